// Package source fetches application source repositories into local working
// directories. Checkouts are always fresh: an existing directory of the same
// name is removed before cloning, so repeated runs converge without manual
// cleanup.
package source
