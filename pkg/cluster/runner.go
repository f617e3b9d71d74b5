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

package cluster

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner invokes the cluster-management tool. Calls are blocking and
// synchronous; no timeout is imposed here, the tool's own behavior governs.
// Output is the command's stdout; the error carries stderr when the command
// fails.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// execRunner runs a located binary through os/exec.
type execRunner struct {
	bin string
}

// NewRunner creates a Runner for the tool binary at path bin.
func NewRunner(bin string) Runner {
	return &execRunner{bin: bin}
}

func (r *execRunner) Run(ctx context.Context, args ...string) (string, error) {
	slog.Debug("running cluster tool", "bin", r.bin, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := stdout.String()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, &commandError{cause: err, stderr: msg}
		}
		return out, err
	}
	return out, nil
}

// commandError attaches captured stderr to a command failure.
type commandError struct {
	cause  error
	stderr string
}

func (e *commandError) Error() string {
	return e.cause.Error() + ": " + e.stderr
}

func (e *commandError) Unwrap() error {
	return e.cause
}
