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

package toolchain

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	apperrors "github.com/example/shipctl/pkg/errors"
)

// Resolver produces a candidate path for a named tool. Returning an empty
// string means the resolver has no candidate; the locator moves on to the
// next resolver in the chain.
type Resolver interface {
	Resolve(tool string) string
}

// PathResolver resolves a tool through the process's command search path.
type PathResolver struct{}

// Resolve returns the PATH hit for tool, or empty if not found.
func (PathResolver) Resolve(tool string) string {
	p, err := exec.LookPath(tool)
	if err != nil {
		return ""
	}
	return p
}

// KnownPathsResolver probes a fixed list of install locations. Each
// candidate is the full path of the tool binary, recorded in POSIX form.
type KnownPathsResolver struct {
	Candidates []string
}

// Resolve returns the first candidate that exists on disk and names the
// requested tool, or empty if none do.
func (r KnownPathsResolver) Resolve(tool string) string {
	for _, c := range r.Candidates {
		c = NormalizePath(c)
		base := strings.TrimSuffix(filepath.Base(c), ".exe")
		if base != tool {
			continue
		}
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// NormalizePath converts path separators from non-POSIX sources to POSIX
// form. Candidate lists can come from configuration written on Windows.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Locator finds required external tools through an ordered resolver chain.
type Locator struct {
	resolvers []Resolver
}

// NewLocator creates a locator with the given resolver chain. With no
// resolvers the default chain is used: PATH lookup first, then the known
// minikube install locations.
func NewLocator(resolvers ...Resolver) *Locator {
	if len(resolvers) == 0 {
		resolvers = []Resolver{
			PathResolver{},
			KnownPathsResolver{Candidates: defaultKnownPaths()},
		}
	}
	return &Locator{resolvers: resolvers}
}

// Locate returns a usable path for the named tool. Resolvers are probed in
// order and the first hit wins; no further candidates are checked. A miss
// across the whole chain is fatal to the caller.
func (l *Locator) Locate(tool string) (string, error) {
	for _, r := range l.resolvers {
		if p := r.Resolve(tool); p != "" {
			slog.Debug("located tool", "tool", tool, "path", p)
			return p, nil
		}
	}
	return "", apperrors.NewWithContext(
		apperrors.ErrCodeToolNotFound,
		"required tool not found",
		map[string]any{"tool": tool},
	)
}

// defaultKnownPaths lists install locations probed after PATH. Ordering is
// the probe priority.
func defaultKnownPaths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{
		"/usr/local/bin/minikube",
		"/opt/homebrew/bin/minikube",
		"/usr/bin/minikube",
		`C:\Program Files\Kubernetes\Minikube\minikube.exe`,
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, ".local", "bin", "minikube"))
	}
	return paths
}
