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

package cluster

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Interface is an alias for kubernetes.Interface to allow easier mocking in
// tests via fake.NewClientset.
type Interface = kubernetes.Interface

// NewPathOptions returns config access for the given kubeconfig path. If
// kubeconfig is empty, the standard loading rules apply: the KUBECONFIG
// environment variable, then the default file in the user's home directory.
func NewPathOptions(kubeconfig string) *clientcmd.PathOptions {
	pathOpts := clientcmd.NewDefaultPathOptions()
	if kubeconfig != "" {
		pathOpts.LoadingRules.ExplicitPath = kubeconfig
	}
	return pathOpts
}

// BuildKubeClient creates a Kubernetes client pinned to contextName.
// Pinning the context on the client keeps resource operations aimed at the
// local cluster even before the kubeconfig's current context is switched.
// The named context must already exist in the configuration, so callers
// that may face a first-run machine must not build the client before the
// context has been ensured.
func BuildKubeClient(pathOpts *clientcmd.PathOptions, contextName string) (*kubernetes.Clientset, error) {
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		pathOpts.LoadingRules,
		&clientcmd.ConfigOverrides{CurrentContext: contextName},
	)

	config, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, nil
}
