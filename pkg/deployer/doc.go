/*
Package deployer orchestrates the end-to-end deployment pipeline.

A Pipeline runs four stages strictly in order:

 1. locate-tool: find the cluster-management binary
 2. fetch-source: clone the application repository
 3. publish-image: build the container image and push it to the registry
 4. reconcile-cluster: converge the local cluster and resolve the access URL

Stages never run concurrently and a failed stage stops the run; the
remaining stages are recorded as skipped. Run always returns a Result with
per-stage outcomes so callers can report partial progress.

# Usage

	p := &deployer.Pipeline{
		Config: deployer.Config{
			RepoURL:      "https://github.com/someuser/demo.git",
			RegistryUser: "someuser",
		},
	}
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(result.URL)

Component fields (Locator, Acquirer, Publisher, NewReconciler) default to
production implementations when nil; tests substitute fakes.
*/
package deployer
