// Package oci publishes rendered manifest bundles to OCI-compliant
// registries using the ORAS (OCI Registry As Storage) library.
//
// A publish target is parsed with ParseOutputTarget: targets with the
// oci:// scheme address a registry, anything else is treated as a local
// directory. Registry pushes pack the bundle directory as an OCI 1.1
// artifact and copy it to the remote repository:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/someuser/demo-manifests:v1")
//	if err != nil {
//	    return err
//	}
//	result, err := oci.Push(ctx, oci.PushOptions{
//	    SourceDir:  "/path/to/manifests",
//	    Registry:   ref.Registry,
//	    Repository: ref.Repository,
//	    Tag:        ref.Tag,
//	})
//
// Authentication uses the standard Docker credential store
// (~/.docker/config.json) through the ORAS credentials package. PlainHTTP
// and InsecureTLS exist for local development registries.
//
// Artifacts carry the media type "application/vnd.shipctl.manifests", which
// distinguishes manifest bundles from runnable container images. Consumers
// that do not understand the type should treat the artifact as an opaque
// blob.
package oci
