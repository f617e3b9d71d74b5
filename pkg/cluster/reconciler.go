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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/tools/clientcmd"

	apperrors "github.com/example/shipctl/pkg/errors"
	"github.com/example/shipctl/pkg/manifest"
)

// Reconciler drives the local cluster toward a correct running deployment.
// Repeated invocations with the same inputs converge without manual cleanup:
// context selection, cluster start, and stale-resource removal are each
// idempotent checks, and resource creation is preceded by unconditional
// deletion of any previous run's leftovers.
type Reconciler struct {
	client      Interface
	newClient   func() (Interface, error)
	runner      Runner
	access      clientcmd.ConfigAccess
	contextName string
}

// NewReconciler creates a reconciler over the given cluster client, tool
// runner, and kubeconfig access, targeting the named context.
func NewReconciler(client Interface, runner Runner, access clientcmd.ConfigAccess, contextName string) *Reconciler {
	return &Reconciler{
		client:      client,
		runner:      runner,
		access:      access,
		contextName: contextName,
	}
}

// NewDeferredReconciler creates a reconciler that builds its Kubernetes
// client on first resource operation rather than up front. A client pinned
// to the expected context cannot be built from a kubeconfig that does not
// contain that context yet, so on first-run machines construction must wait
// until EnsureContext has registered it.
func NewDeferredReconciler(kubeconfig, contextName string, runner Runner) *Reconciler {
	pathOpts := NewPathOptions(kubeconfig)
	return &Reconciler{
		newClient: func() (Interface, error) {
			return BuildKubeClient(pathOpts, contextName)
		},
		runner:      runner,
		access:      pathOpts,
		contextName: contextName,
	}
}

// kube returns the cluster client, building and caching it on first use.
func (r *Reconciler) kube() (Interface, error) {
	if r.client != nil {
		return r.client, nil
	}
	client, err := r.newClient()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to build cluster client", err)
	}
	r.client = client
	return r.client, nil
}

// Reconcile runs the full sequence: context selection, cluster liveness,
// stale-resource removal, declarative apply, and address resolution. It
// returns the externally reachable URL for the applied service. The URL is a
// best-effort read taken right after apply; pods may not be ready yet.
func (r *Reconciler) Reconcile(ctx context.Context, pair *manifest.Pair) (string, error) {
	if err := r.EnsureContext(ctx); err != nil {
		return "", err
	}
	if err := r.EnsureRunning(ctx); err != nil {
		return "", err
	}
	if err := r.RemoveStale(ctx, pair.Deployment.Namespace, pair.Deployment.Name); err != nil {
		return "", err
	}
	if err := r.Apply(ctx, pair); err != nil {
		return "", err
	}
	return r.ResolveURL(ctx, pair.Service.Namespace, pair.Service.Name)
}

// EnsureContext makes the expected context the kubeconfig's current one.
// Already-correct is a no-op with no repair call. A context missing from the
// configuration set is regenerated from the local cluster's own state before
// switching, which covers first-run machines without penalizing later runs.
func (r *Reconciler) EnsureContext(ctx context.Context) error {
	cfg, err := r.access.GetStartingConfig()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to load kubeconfig", err)
	}

	if cfg.CurrentContext == r.contextName {
		slog.Debug("context already selected", "context", r.contextName)
		return nil
	}

	if _, ok := cfg.Contexts[r.contextName]; !ok {
		slog.Info("repairing missing context", "context", r.contextName)
		if _, err := r.runner.Run(ctx, "update-context"); err != nil {
			return apperrors.WrapWithContext(
				apperrors.ErrCodeCommandFailed,
				"context repair failed",
				err,
				map[string]any{"context": r.contextName},
			)
		}
		if cfg, err = r.access.GetStartingConfig(); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to reload kubeconfig", err)
		}
		if _, ok := cfg.Contexts[r.contextName]; !ok {
			return apperrors.NewWithContext(
				apperrors.ErrCodeNotFound,
				"context missing after repair",
				map[string]any{"context": r.contextName},
			)
		}
	}

	slog.Info("switching context", "context", r.contextName)
	cfg.CurrentContext = r.contextName
	if err := clientcmd.ModifyConfig(r.access, *cfg, true); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to switch context", err)
	}
	return nil
}

// toolStatus is the cluster tool's machine-readable status report.
type toolStatus struct {
	Host    string `json:"Host"`
	Kubelet string `json:"Kubelet"`
}

const statusRunning = "Running"

// EnsureRunning starts the local cluster if its runtime is not already
// active. An already-running cluster is an idempotent no-op. Starting blocks
// until the tool reports ready or failed.
func (r *Reconciler) EnsureRunning(ctx context.Context) error {
	// The status query exits non-zero for a stopped cluster while still
	// reporting valid JSON, so the output is parsed before the exit status
	// is judged.
	out, runErr := r.runner.Run(ctx, "status", "--output=json")

	var st toolStatus
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		if runErr != nil {
			return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "cluster status query failed", runErr)
		}
		return apperrors.Wrap(apperrors.ErrCodeInternal, "unexpected cluster status output", err)
	}

	if st.Host == statusRunning && st.Kubelet == statusRunning {
		slog.Debug("cluster already running")
		return nil
	}

	slog.Info("starting local cluster")
	if _, err := r.runner.Run(ctx, "start"); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "cluster start failed", err)
	}
	return nil
}

// RemoveStale deletes any deployment and service bearing the application
// name in the namespace. NotFound is success, not an error: the guarantee is
// only that the subsequent creation step never collides with a previous
// run's leftovers.
func (r *Reconciler) RemoveStale(ctx context.Context, namespace, name string) error {
	client, err := r.kube()
	if err != nil {
		return err
	}

	err = client.AppsV1().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err := ignoreNotFound(err); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "failed to delete existing deployment", err)
	}

	err = client.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err := ignoreNotFound(err); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "failed to delete existing service", err)
	}

	slog.Info("stale resources removed", "namespace", namespace, "name", name)
	return nil
}

// Apply submits the deployment/service pair. The cluster's own
// reconciliation loop is trusted to converge pods to the desired replica
// count; no readiness polling happens here. There is no rollback of a
// partially applied pair.
func (r *Reconciler) Apply(ctx context.Context, pair *manifest.Pair) error {
	client, err := r.kube()
	if err != nil {
		return err
	}

	d, err := client.AppsV1().Deployments(pair.Deployment.Namespace).
		Create(ctx, pair.Deployment, metav1.CreateOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "failed to create deployment", err)
	}
	slog.Info("deployment created", "name", d.Name, "namespace", d.Namespace)

	s, err := client.CoreV1().Services(pair.Service.Namespace).
		Create(ctx, pair.Service, metav1.CreateOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "failed to create service", err)
	}
	slog.Info("service created", "name", s.Name, "namespace", s.Namespace)

	return nil
}

// ResolveURL composes the externally reachable URL from the service's
// assigned node port and the cluster's address.
func (r *Reconciler) ResolveURL(ctx context.Context, namespace, name string) (string, error) {
	client, err := r.kube()
	if err != nil {
		return "", err
	}

	svc, err := client.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeCommandFailed, "failed to query service", err)
	}

	var nodePort int32
	for _, p := range svc.Spec.Ports {
		if p.NodePort != 0 {
			nodePort = p.NodePort
			break
		}
	}
	if nodePort == 0 {
		return "", apperrors.NewWithContext(
			apperrors.ErrCodeUnavailable,
			"service has no assigned node port",
			map[string]any{"service": name},
		)
	}

	out, err := r.runner.Run(ctx, "ip")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeCommandFailed, "failed to query cluster address", err)
	}
	ip := strings.TrimSpace(out)
	if ip == "" {
		return "", apperrors.New(apperrors.ErrCodeInternal, "cluster address query returned no address")
	}

	return fmt.Sprintf("http://%s:%d", ip, nodePort), nil
}

// ignoreNotFound returns nil if the error is "not found", otherwise returns
// the error. Used to make resource deletion idempotent.
func ignoreNotFound(err error) error {
	if k8serrors.IsNotFound(err) {
		return nil
	}
	return err
}
