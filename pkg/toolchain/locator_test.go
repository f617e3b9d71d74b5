package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/example/shipctl/pkg/errors"
)

// staticResolver always returns the same path, regardless of tool name.
type staticResolver struct {
	path string
}

func (r staticResolver) Resolve(string) string { return r.path }

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "windows separators",
			input: `C:\Program Files\Kubernetes\Minikube\minikube.exe`,
			want:  "C:/Program Files/Kubernetes/Minikube/minikube.exe",
		},
		{
			name:  "posix path unchanged",
			input: "/usr/local/bin/minikube",
			want:  "/usr/local/bin/minikube",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.input))
		})
	}
}

func TestLocateFirstHitWins(t *testing.T) {
	loc := NewLocator(
		staticResolver{path: ""},
		staticResolver{path: "/first/minikube"},
		staticResolver{path: "/second/minikube"},
	)

	p, err := loc.Locate("minikube")
	require.NoError(t, err)
	assert.Equal(t, "/first/minikube", p)
}

func TestLocateNoCandidates(t *testing.T) {
	loc := NewLocator(staticResolver{path: ""})

	_, err := loc.Locate("minikube")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeToolNotFound, apperrors.CodeOf(err))
}

func TestKnownPathsResolver(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "minikube")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	r := KnownPathsResolver{Candidates: []string{
		filepath.Join(dir, "missing", "minikube"),
		bin,
	}}
	assert.Equal(t, bin, r.Resolve("minikube"))

	// A candidate for a different tool never matches.
	assert.Equal(t, "", r.Resolve("kubectl"))
}

func TestKnownPathsResolverIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "minikube"), 0o755))

	r := KnownPathsResolver{Candidates: []string{filepath.Join(dir, "minikube")}}
	assert.Equal(t, "", r.Resolve("minikube"))
}
