// Package manifest models the deployment/service pair submitted to the
// cluster as one explicit declarative value. The pair is built from typed
// Kubernetes objects so it can be validated and unit-tested without a live
// cluster, and rendered to YAML for inspection or archival.
package manifest
