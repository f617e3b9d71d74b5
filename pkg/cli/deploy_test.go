/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/example/shipctl/pkg/deployer"
)

func TestDeployMissingRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "no flags",
			args: []string{"shipctl", "deploy"},
		},
		{
			name: "missing registry user",
			args: []string{"shipctl", "deploy", "--repo", "https://github.com/someuser/demo.git"},
		},
		{
			name: "missing repo",
			args: []string{"shipctl", "deploy", "--registry-user", "someuser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := New()
			cmd.Writer = new(bytes.Buffer)

			err := cmd.Run(context.Background(), tt.args)
			if err == nil {
				t.Error("expected error for missing required flag")
			}
		})
	}
}

func TestDeployUnknownFormat(t *testing.T) {
	cmd := New()
	cmd.Writer = new(bytes.Buffer)

	err := cmd.Run(context.Background(), []string{
		"shipctl", "deploy",
		"--repo", "https://github.com/someuser/demo.git",
		"--registry-user", "someuser",
		"--format", "xml",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestWriteResultText(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cli.Command{Writer: &buf}

	result := &deployer.Result{
		ID:  "run-1",
		App: "demo",
		URL: "http://192.168.49.2:30080",
	}
	if err := writeResult(context.Background(), cmd, formatText, result); err != nil {
		t.Fatalf("writeResult failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "http://192.168.49.2:30080") {
		t.Errorf("text output missing URL: %q", out)
	}
	if !strings.Contains(out, "demo") {
		t.Errorf("text output missing app name: %q", out)
	}
}

func TestRootVersionAndCommands(t *testing.T) {
	cmd := New()

	if cmd.Name != "shipctl" {
		t.Errorf("Name = %v, want shipctl", cmd.Name)
	}

	names := make(map[string]bool)
	for _, sub := range cmd.Commands {
		names[sub.Name] = true
	}
	for _, want := range []string{"deploy", "manifest"} {
		if !names[want] {
			t.Errorf("missing %q command", want)
		}
	}
}
