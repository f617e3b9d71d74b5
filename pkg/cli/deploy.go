/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/example/shipctl/pkg/defaults"
	"github.com/example/shipctl/pkg/deployer"
	"github.com/example/shipctl/pkg/manifest"
	"github.com/example/shipctl/pkg/oci"
	"github.com/example/shipctl/pkg/serializer"
)

// formatText prints the human-readable run summary instead of a
// serialization format.
const formatText = "text"

func deployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deploy",
		EnableShellCompletion: true,
		Usage:                 "Clone, build, push, and deploy a repository to the local cluster",
		Description: `Run the full deployment pipeline for a git repository:

  1. Locate the cluster-management tool (minikube)
  2. Clone the repository into the work directory
  3. Build the container image and push it to the registry
  4. Converge the local cluster onto a Deployment and NodePort Service

On success the application access URL is printed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "Git repository URL to deploy",
			},
			&cli.StringFlag{
				Name:     "registry-user",
				Aliases:  []string{"u"},
				Required: true,
				Usage:    "Registry user or namespace the image is pushed under",
			},
			&cli.StringFlag{
				Name:    "registry-password",
				Sources: cli.EnvVars("SHIPCTL_REGISTRY_PASSWORD"),
				Usage:   "Registry password or access token",
			},
			&cli.StringFlag{
				Name:    "app",
				Aliases: []string{"a"},
				Value:   defaults.AppName,
				Usage:   "Application name, used for the image repository and cluster resources",
			},
			&cli.StringFlag{
				Name:  "tag",
				Value: defaults.ImageTag,
				Usage: "Image tag",
			},
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Value:   defaults.Namespace,
				Usage:   "Target cluster namespace",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   defaults.ContainerPort,
				Usage:   "Port the application listens on inside the container",
			},
			&cli.StringFlag{
				Name:  "repo-token",
				Usage: "Token for cloning private repositories",
			},
			&cli.StringFlag{
				Name:  "work-dir",
				Usage: "Checkout and build directory (default: temp dir per app)",
			},
			&cli.StringFlag{
				Name:  "kubeconfig",
				Usage: "Kubeconfig path (default: standard loading order)",
			},
			&cli.StringFlag{
				Name:  "context",
				Value: defaults.ClusterContext,
				Usage: "Kubeconfig context of the local cluster",
			},
			&cli.StringFlag{
				Name:  "publish-manifests",
				Usage: "Optional target for the applied manifests: a directory or an oci:// reference",
			},
			outputFlag,
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   formatText,
				Usage: fmt.Sprintf("Result format (supported values: %s, %v)",
					formatText, serializer.SupportedFormats()),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if format != formatText && serializer.Format(format).IsUnknown() {
				return fmt.Errorf("unknown output format: %q", format)
			}

			pipeline := &deployer.Pipeline{
				Config: deployer.Config{
					RepoURL:          cmd.String("repo"),
					RepoToken:        cmd.String("repo-token"),
					App:              cmd.String("app"),
					Tag:              cmd.String("tag"),
					Namespace:        cmd.String("namespace"),
					ContainerPort:    int32(cmd.Int("port")),
					RegistryUser:     cmd.String("registry-user"),
					RegistryPassword: cmd.String("registry-password"),
					WorkDir:          cmd.String("work-dir"),
					Kubeconfig:       cmd.String("kubeconfig"),
					Context:          cmd.String("context"),
				},
			}

			result, err := pipeline.Run(ctx)
			if err != nil {
				return fmt.Errorf("deployment failed: %w", err)
			}

			if target := cmd.String("publish-manifests"); target != "" {
				if err := publishManifests(ctx, pipeline.Config, result, target); err != nil {
					return fmt.Errorf("failed to publish manifests: %w", err)
				}
			}

			return writeResult(ctx, cmd, format, result)
		},
	}
}

// writeResult renders the run result: plain text prints the access URL,
// everything else goes through the serializer.
func writeResult(ctx context.Context, cmd *cli.Command, format string, result *deployer.Result) error {
	if format == formatText {
		fmt.Fprintf(cmd.Writer, "Deployed %s (run %s)\nAccess URL: %s\n", result.App, result.ID, result.URL)
		return nil
	}

	ser := serializer.NewFileWriterOrStdout(serializer.Format(format), cmd.String("output"))
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, result)
}

// publishManifests writes or pushes the manifest pair that was applied to
// the cluster.
func publishManifests(ctx context.Context, cfg deployer.Config, result *deployer.Result, target string) error {
	pair, err := manifest.App{
		Name:          result.App,
		Namespace:     result.Namespace,
		Image:         result.Image,
		ContainerPort: cfg.ContainerPort,
	}.BuildPair()
	if err != nil {
		return err
	}

	ref, err := oci.ParseOutputTarget(target)
	if err != nil {
		return err
	}

	if !ref.IsOCI {
		return pair.WriteBundle(ref.LocalPath)
	}

	dir, err := os.MkdirTemp("", "shipctl-manifests-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := pair.WriteBundle(dir); err != nil {
		return err
	}

	tag := ref.Tag
	if tag == "" {
		tag = cfg.Tag
	}
	pushed, err := oci.Push(ctx, oci.PushOptions{
		SourceDir:  dir,
		Registry:   ref.Registry,
		Repository: ref.Repository,
		Tag:        tag,
	})
	if err != nil {
		return err
	}

	slog.Info("published manifest bundle", "reference", pushed.Reference, "digest", pushed.Digest)
	return nil
}
