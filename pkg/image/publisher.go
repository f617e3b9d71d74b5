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

package image

import (
	"context"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types/build"
	imagetypes "github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"

	apperrors "github.com/example/shipctl/pkg/errors"
)

// Engine is the subset of the Docker Engine API the publisher uses.
// Narrowed for testability; *client.Client satisfies it.
type Engine interface {
	ImageBuild(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error)
	RegistryLogin(ctx context.Context, auth registry.AuthConfig) (registry.AuthenticateOKBody, error)
	ImagePush(ctx context.Context, ref string, options imagetypes.PushOptions) (io.ReadCloser, error)
}

// Credentials authenticate the push against the image registry.
type Credentials struct {
	Username string
	Password string
	// Server is the registry endpoint; empty means the default registry.
	Server string
}

// Publisher builds container images from a working directory and publishes
// them to a registry. Build, authenticate, and push run strictly in that
// order; the first failure aborts the whole operation with no local cleanup.
type Publisher struct {
	engine Engine
	// progress receives the engine's build/push output stream.
	progress io.Writer
}

// NewPublisher creates a publisher talking to the local Docker Engine,
// configured from the environment (DOCKER_HOST et al.).
func NewPublisher() (*Publisher, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to connect to docker engine", err)
	}
	return &Publisher{engine: cli, progress: io.Discard}, nil
}

// NewPublisherWithEngine creates a publisher over an explicit engine,
// primarily for tests.
func NewPublisherWithEngine(engine Engine, progress io.Writer) *Publisher {
	if progress == nil {
		progress = io.Discard
	}
	return &Publisher{engine: engine, progress: progress}
}

// Publish builds the image described by the Dockerfile in workDir, tags it
// with ref, authenticates, and pushes it. The builder's own success signal
// is trusted; the build step is otherwise opaque.
func (p *Publisher) Publish(ctx context.Context, workDir string, ref Reference, creds Credentials) error {
	if err := p.buildImage(ctx, workDir, ref); err != nil {
		return err
	}
	if err := p.login(ctx, creds); err != nil {
		return err
	}
	return p.push(ctx, ref, creds)
}

func (p *Publisher) buildImage(ctx context.Context, workDir string, ref Reference) error {
	slog.Info("building image", "dir", workDir, "image", ref.String())

	buildCtx, err := archive.TarWithOptions(workDir, &archive.TarOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create build context", err)
	}
	defer func() { _ = buildCtx.Close() }()

	resp, err := p.engine.ImageBuild(ctx, buildCtx, build.ImageBuildOptions{
		Tags:       []string{ref.String()},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "image build failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Build errors surface inside the JSON stream, not the call error.
	if err := jsonmessage.DisplayJSONMessagesStream(resp.Body, p.progress, 0, false, nil); err != nil {
		return apperrors.WrapWithContext(
			apperrors.ErrCodeCommandFailed,
			"image build failed",
			err,
			map[string]any{"image": ref.String()},
		)
	}
	return nil
}

func (p *Publisher) login(ctx context.Context, creds Credentials) error {
	slog.Info("authenticating to registry", "user", creds.Username)

	_, err := p.engine.RegistryLogin(ctx, registry.AuthConfig{
		Username:      creds.Username,
		Password:      creds.Password,
		ServerAddress: creds.Server,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, "registry authentication failed", err)
	}
	return nil
}

func (p *Publisher) push(ctx context.Context, ref Reference, creds Credentials) error {
	slog.Info("pushing image", "image", ref.String())

	encoded, err := registry.EncodeAuthConfig(registry.AuthConfig{
		Username:      creds.Username,
		Password:      creds.Password,
		ServerAddress: creds.Server,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode registry auth", err)
	}

	out, err := p.engine.ImagePush(ctx, ref.String(), imagetypes.PushOptions{RegistryAuth: encoded})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "image push failed", err)
	}
	defer func() { _ = out.Close() }()

	if err := jsonmessage.DisplayJSONMessagesStream(out, p.progress, 0, false, nil); err != nil {
		return apperrors.WrapWithContext(
			apperrors.ErrCodeCommandFailed,
			"image push failed",
			err,
			map[string]any{"image": ref.String()},
		)
	}
	return nil
}
