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
	"github.com/example/shipctl/pkg/image"
	"github.com/example/shipctl/pkg/manifest"
	"github.com/example/shipctl/pkg/oci"
)

func manifestCmd() *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Work with deployment manifests without touching the cluster",
		Commands: []*cli.Command{
			manifestRenderCmd(),
			manifestPushCmd(),
		},
	}
}

// manifestFlags are the app parameters shared by the render and push
// subcommands.
func manifestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "registry-user",
			Aliases:  []string{"u"},
			Required: true,
			Usage:    "Registry user or namespace of the image",
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
	}
}

// buildPairFromCmd composes the validated manifest pair from command flags.
func buildPairFromCmd(cmd *cli.Command) (*manifest.Pair, error) {
	ref, err := image.NewReference(cmd.String("registry-user"), cmd.String("app"), cmd.String("tag"))
	if err != nil {
		return nil, err
	}

	return manifest.App{
		Name:          cmd.String("app"),
		Namespace:     cmd.String("namespace"),
		Image:         ref.String(),
		ContainerPort: int32(cmd.Int("port")),
	}.BuildPair()
}

func manifestRenderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Render the Deployment and Service manifests as YAML",
		Flags:                 append(manifestFlags(), outputFlag),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			pair, err := buildPairFromCmd(cmd)
			if err != nil {
				return err
			}

			out, err := pair.RenderYAML()
			if err != nil {
				return err
			}

			if path := cmd.String("output"); path != "" {
				return os.WriteFile(path, out, 0o644)
			}
			_, err = fmt.Fprint(cmd.Root().Writer, string(out))
			return err
		},
	}
}

func manifestPushCmd() *cli.Command {
	return &cli.Command{
		Name:                  "push",
		EnableShellCompletion: true,
		Usage:                 "Publish the manifest bundle to a directory or OCI registry",
		Flags: append(manifestFlags(),
			&cli.StringFlag{
				Name:     "target",
				Required: true,
				Usage:    "Publish target: a directory path or an oci:// reference",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			pair, err := buildPairFromCmd(cmd)
			if err != nil {
				return err
			}

			ref, err := oci.ParseOutputTarget(cmd.String("target"))
			if err != nil {
				return err
			}

			if !ref.IsOCI {
				if err := pair.WriteBundle(ref.LocalPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.Writer, "Manifest bundle written to %s\n", ref.LocalPath)
				return nil
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
				tag = cmd.String("tag")
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
			fmt.Fprintf(cmd.Writer, "Pushed %s\nDigest: %s\n", pushed.Reference, pushed.Digest)
			return nil
		},
	}
}
