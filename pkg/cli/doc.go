// Package cli implements the shipctl command-line interface.
//
// # Commands
//
// deploy - Run the full pipeline for a repository:
//
//	shipctl deploy --repo https://github.com/someuser/demo.git --registry-user someuser
//
// Clones the repository, builds and pushes its container image, converges
// the local cluster onto a Deployment and NodePort Service, and prints the
// access URL. All stage knobs (app name, tag, namespace, port, kubeconfig,
// context, work dir) have defaults matching a plain minikube setup.
//
// manifest render - Render the Deployment+Service pair as YAML:
//
//	shipctl manifest render --registry-user someuser --app demo --port 9090
//
// manifest push - Publish a manifest bundle to a directory or OCI registry:
//
//	shipctl manifest push --registry-user someuser --target oci://ghcr.io/someuser/demo-manifests:v1
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// Logs are structured JSON on stderr; command output goes to stdout.
package cli
