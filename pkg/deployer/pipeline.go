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

package deployer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/example/shipctl/pkg/cluster"
	"github.com/example/shipctl/pkg/defaults"
	apperrors "github.com/example/shipctl/pkg/errors"
	"github.com/example/shipctl/pkg/image"
	"github.com/example/shipctl/pkg/manifest"
	"github.com/example/shipctl/pkg/source"
	"github.com/example/shipctl/pkg/toolchain"
)

// Config holds the inputs of a deployment run. RepoURL and RegistryUser are
// required; everything else has a default.
type Config struct {
	// RepoURL is the git repository to deploy.
	RepoURL string
	// RepoToken optionally authenticates the clone.
	RepoToken string

	// App names the image repository, deployment, and service.
	App string
	// Tag is the image tag.
	Tag string
	// Namespace is the target cluster namespace.
	Namespace string
	// ContainerPort is the port the application listens on.
	ContainerPort int32

	// RegistryUser is the registry account the image is pushed under.
	RegistryUser string
	// RegistryPassword authenticates the registry push.
	RegistryPassword string

	// WorkDir is where the repository is cloned and the image built from.
	// Empty means a per-app directory under the system temp dir.
	WorkDir string

	// Kubeconfig is an explicit kubeconfig path; empty uses the standard
	// loading order.
	Kubeconfig string
	// Context is the kubeconfig context of the target cluster.
	Context string
}

func (c *Config) applyDefaults() {
	if c.App == "" {
		c.App = defaults.AppName
	}
	if c.Tag == "" {
		c.Tag = defaults.ImageTag
	}
	if c.Namespace == "" {
		c.Namespace = defaults.Namespace
	}
	if c.ContainerPort == 0 {
		c.ContainerPort = defaults.ContainerPort
	}
	if c.Context == "" {
		c.Context = defaults.ClusterContext
	}
	if c.WorkDir == "" {
		c.WorkDir = filepath.Join(os.TempDir(), "shipctl", c.App)
	}
}

func (c *Config) validate() error {
	if c.RepoURL == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "repository URL is required")
	}
	if c.RegistryUser == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "registry user is required")
	}
	return nil
}

// ToolLocator finds the cluster-management binary.
type ToolLocator interface {
	Locate(tool string) (string, error)
}

// SourceAcquirer clones the application repository.
type SourceAcquirer interface {
	Fetch(ctx context.Context, opts source.Options) error
}

// ImagePublisher builds and pushes the application image.
type ImagePublisher interface {
	Publish(ctx context.Context, workDir string, ref image.Reference, creds image.Credentials) error
}

// ClusterReconciler converges the cluster onto the manifest pair and
// resolves the access URL.
type ClusterReconciler interface {
	CheckToolVersion(ctx context.Context) error
	Reconcile(ctx context.Context, pair *manifest.Pair) (string, error)
}

// ReconcilerFunc builds a ClusterReconciler once the tool binary is known.
type ReconcilerFunc func(toolPath string) (ClusterReconciler, error)

// Pipeline runs the deployment stages strictly in order: locate the cluster
// tool, fetch the source, publish the image, reconcile the cluster. Nil
// component fields get production defaults on Run, so tests can substitute
// fakes the same way collectors are substituted elsewhere.
type Pipeline struct {
	// Config holds the run inputs.
	Config Config

	// Locator finds the cluster tool. If nil, the default resolver chain
	// (PATH plus known install locations) is used.
	Locator ToolLocator

	// Acquirer clones the repository. If nil, a go-git acquirer is used.
	Acquirer SourceAcquirer

	// Publisher builds and pushes the image. If nil, a Docker Engine
	// publisher is created on first use.
	Publisher ImagePublisher

	// NewReconciler builds the cluster reconciler from the located tool
	// path. If nil, a client-go backed reconciler is used.
	NewReconciler ReconcilerFunc
}

// Run executes the pipeline. The returned Result always carries per-stage
// outcomes, including for failed runs; the error is the first stage failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.Config.applyDefaults()
	if err := p.Config.validate(); err != nil {
		return nil, err
	}

	res := &Result{
		ID:        uuid.NewString(),
		App:       p.Config.App,
		Namespace: p.Config.Namespace,
	}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	slog.Info("starting deployment",
		"run", res.ID,
		"repo", p.Config.RepoURL,
		"app", p.Config.App,
		"namespace", p.Config.Namespace,
	)

	toolPath, err := p.runLocate(ctx, res)
	if err != nil {
		return res, err
	}

	if err := p.runFetch(ctx, res); err != nil {
		return res, err
	}

	ref, err := p.runPublish(ctx, res)
	if err != nil {
		return res, err
	}

	url, err := p.runReconcile(ctx, res, toolPath, ref)
	if err != nil {
		return res, err
	}
	res.URL = url

	slog.Info("deployment complete", "run", res.ID, "url", url)
	return res, nil
}

// record appends a stage result, marking all remaining stages skipped when
// the stage failed.
func (res *Result) record(name string, start time.Time, detail string, err error) {
	sr := StageResult{
		Name:     name,
		Status:   StageSucceeded,
		Detail:   detail,
		Duration: time.Since(start),
	}
	if err != nil {
		sr.Status = StageFailed
		sr.Detail = err.Error()
	}
	res.Stages = append(res.Stages, sr)
	if err == nil {
		return
	}

	order := []string{StageLocateTool, StageFetchSource, StagePublishImage, StageReconcile}
	for i, stage := range order {
		if stage == name {
			for _, skipped := range order[i+1:] {
				res.Stages = append(res.Stages, StageResult{Name: skipped, Status: StageSkipped})
			}
			return
		}
	}
}

func (p *Pipeline) runLocate(_ context.Context, res *Result) (string, error) {
	start := time.Now()
	locator := p.Locator
	if locator == nil {
		locator = toolchain.NewLocator()
	}

	toolPath, err := locator.Locate(defaults.ClusterTool)
	res.record(StageLocateTool, start, toolPath, err)
	if err != nil {
		return "", err
	}
	slog.Debug("located cluster tool", "path", toolPath)
	return toolPath, nil
}

func (p *Pipeline) runFetch(ctx context.Context, res *Result) error {
	start := time.Now()
	acquirer := p.Acquirer
	if acquirer == nil {
		acquirer = source.NewAcquirer()
	}

	err := acquirer.Fetch(ctx, source.Options{
		URL:   p.Config.RepoURL,
		Dir:   p.Config.WorkDir,
		Token: p.Config.RepoToken,
	})
	res.record(StageFetchSource, start, p.Config.WorkDir, err)
	if err != nil {
		return err
	}
	slog.Debug("fetched source", "dir", p.Config.WorkDir)
	return nil
}

func (p *Pipeline) runPublish(ctx context.Context, res *Result) (image.Reference, error) {
	start := time.Now()

	ref, err := image.NewReference(p.Config.RegistryUser, p.Config.App, p.Config.Tag)
	if err != nil {
		res.record(StagePublishImage, start, "", err)
		return image.Reference{}, err
	}

	publisher := p.Publisher
	if publisher == nil {
		var perr error
		publisher, perr = image.NewPublisher()
		if perr != nil {
			res.record(StagePublishImage, start, "", perr)
			return image.Reference{}, perr
		}
	}

	err = publisher.Publish(ctx, p.Config.WorkDir, ref, image.Credentials{
		Username: p.Config.RegistryUser,
		Password: p.Config.RegistryPassword,
	})
	res.record(StagePublishImage, start, ref.String(), err)
	if err != nil {
		return image.Reference{}, err
	}

	res.Image = ref.String()
	slog.Debug("published image", "image", ref.String())
	return ref, nil
}

func (p *Pipeline) runReconcile(ctx context.Context, res *Result, toolPath string, ref image.Reference) (string, error) {
	start := time.Now()

	pair, err := manifest.App{
		Name:          p.Config.App,
		Namespace:     p.Config.Namespace,
		Image:         ref.String(),
		ContainerPort: p.Config.ContainerPort,
	}.BuildPair()
	if err != nil {
		res.record(StageReconcile, start, "", err)
		return "", err
	}

	newReconciler := p.NewReconciler
	if newReconciler == nil {
		newReconciler = p.defaultReconciler
	}
	reconciler, err := newReconciler(toolPath)
	if err != nil {
		res.record(StageReconcile, start, "", err)
		return "", err
	}

	if err := reconciler.CheckToolVersion(ctx); err != nil {
		res.record(StageReconcile, start, "", err)
		return "", err
	}

	url, err := reconciler.Reconcile(ctx, pair)
	res.record(StageReconcile, start, url, err)
	if err != nil {
		return "", err
	}
	return url, nil
}

func (p *Pipeline) defaultReconciler(toolPath string) (ClusterReconciler, error) {
	// The client is built lazily inside the reconciler: a first-run
	// machine has no context to pin to until EnsureContext registers it.
	runner := cluster.NewRunner(toolPath)
	return cluster.NewDeferredReconciler(p.Config.Kubeconfig, p.Config.Context, runner), nil
}
