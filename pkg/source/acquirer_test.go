package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/example/shipctl/pkg/errors"
)

// initTestRepo creates a local git repository with a single committed file,
// usable as a clone source without any network access.
func initTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("Dockerfile")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@local",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

func TestFetch(t *testing.T) {
	src := initTestRepo(t)
	dst := filepath.Join(t.TempDir(), "checkout")

	err := NewAcquirer().Fetch(t.Context(), Options{URL: src, Dir: dst})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dst, "Dockerfile"))
	assert.NoError(t, err, "clone should contain the committed file")
}

func TestFetchOverwritesExistingDir(t *testing.T) {
	src := initTestRepo(t)
	dst := filepath.Join(t.TempDir(), "checkout")

	// Seed the target with leftovers from a previous run.
	require.NoError(t, os.MkdirAll(dst, 0o755))
	stale := filepath.Join(dst, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	err := NewAcquirer().Fetch(t.Context(), Options{URL: src, Dir: dst})
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale file should be removed by the fresh checkout")
	_, err = os.Stat(filepath.Join(dst, "Dockerfile"))
	assert.NoError(t, err)
}

func TestFetchBadURL(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "checkout")

	err := NewAcquirer().Fetch(t.Context(), Options{
		URL: filepath.Join(t.TempDir(), "no-such-repo"),
		Dir: dst,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCommandFailed, apperrors.CodeOf(err))
}

func TestFetchValidation(t *testing.T) {
	a := NewAcquirer()

	err := a.Fetch(t.Context(), Options{Dir: "x"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))

	err = a.Fetch(t.Context(), Options{URL: "https://example.com/repo.git"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}
