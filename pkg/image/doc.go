// Package image composes container image references and publishes images
// through the Docker Engine API. A reference is composed once per invocation
// as {registry-user}/{app-name}:{tag} and the same value is used for the
// build tag and the push target.
package image
