// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manifest

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/utils/ptr"

	apperrors "github.com/example/shipctl/pkg/errors"
)

const (
	// Replicas is the fixed desired pod count for every deployment.
	Replicas int32 = 2

	// ServicePort is the externally forwarded port on the service.
	ServicePort int32 = 80

	// appLabel is the label key selecting pods by application name.
	appLabel = "app"
)

// App describes one application deployment: the identity tuple the caller
// supplies plus the image reference composed for this invocation.
type App struct {
	// Name is the application name, used as the resource name and the
	// pod selector label value.
	Name string
	// Namespace is the target cluster namespace.
	Namespace string
	// Image is the fully qualified image reference.
	Image string
	// ContainerPort is the port the application listens on inside the
	// container.
	ContainerPort int32
}

// Pair is the deployment/service pair for one application, submitted to the
// cluster as a single declarative value.
type Pair struct {
	Deployment *appsv1.Deployment
	Service    *corev1.Service
}

// Validate checks the app identity against the cluster's naming and port
// rules. Called before any external side effect.
func (a App) Validate() error {
	if errs := validation.IsDNS1035Label(a.Name); len(errs) > 0 {
		return apperrors.NewWithContext(
			apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid application name: %s", errs[0]),
			map[string]any{"name": a.Name},
		)
	}
	if errs := validation.IsDNS1123Label(a.Namespace); len(errs) > 0 {
		return apperrors.NewWithContext(
			apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid namespace: %s", errs[0]),
			map[string]any{"namespace": a.Namespace},
		)
	}
	if a.Image == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "image reference is required")
	}
	if errs := validation.IsValidPortNum(int(a.ContainerPort)); len(errs) > 0 {
		return apperrors.NewWithContext(
			apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid container port: %s", errs[0]),
			map[string]any{"port": a.ContainerPort},
		)
	}
	return nil
}

// BuildPair constructs the deployment/service pair for the app. The
// deployment runs the fixed replica count with a single container exposing
// the app's port; the service exposes ServicePort on every cluster node and
// forwards it to the container port, selecting pods by the app-name label.
func (a App) BuildPair() (*Pair, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	labels := map[string]string{appLabel: a.Name}

	deployment := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      a.Name,
			Namespace: a.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(Replicas),
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  a.Name,
							Image: a.Image,
							Ports: []corev1.ContainerPort{
								{ContainerPort: a.ContainerPort},
							},
						},
					},
				},
			},
		},
	}

	service := &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      a.Name,
			Namespace: a.Namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeNodePort,
			Selector: labels,
			Ports: []corev1.ServicePort{
				{
					Port:       ServicePort,
					TargetPort: intstr.FromInt32(a.ContainerPort),
				},
			},
		},
	}

	return &Pair{Deployment: deployment, Service: service}, nil
}
