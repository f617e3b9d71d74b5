// Package cluster reconciles the local single-node cluster toward a correct
// running deployment. It owns the ordered idempotency checks that make
// repeated invocations safe: context selection with on-demand repair,
// cluster liveness with start-if-stopped, unconditional stale-resource
// removal tolerating NotFound, declarative apply of the deployment/service
// pair, and best-effort resolution of the external URL.
//
// Resource operations go through the Kubernetes API via client-go; cluster
// lifecycle and address queries go through the located cluster-management
// binary. Every call is blocking and sequential, and any non-success result
// is fatal except delete-not-found and already-correct-context.
package cluster
