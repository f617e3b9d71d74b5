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

package source

import (
	"context"
	"log/slog"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	apperrors "github.com/example/shipctl/pkg/errors"
)

// Options configures a repository fetch.
type Options struct {
	// URL is the repository to clone.
	URL string
	// Dir is the target checkout directory.
	Dir string
	// Token optionally authenticates HTTPS fetches.
	Token string
}

// Acquirer produces clean checkouts of source repositories.
type Acquirer struct{}

// NewAcquirer creates a source acquirer.
func NewAcquirer() *Acquirer {
	return &Acquirer{}
}

// Fetch clones opts.URL into opts.Dir. Any existing directory at that path
// is removed first; idempotency is achieved by destructive overwrite, not
// incremental update. Fetch failure is fatal and not retried.
func (a *Acquirer) Fetch(ctx context.Context, opts Options) error {
	if opts.URL == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "repository URL is required")
	}
	if opts.Dir == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "checkout directory is required")
	}

	if _, err := os.Stat(opts.Dir); err == nil {
		slog.Info("removing existing checkout", "dir", opts.Dir)
		if err := os.RemoveAll(opts.Dir); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to remove existing checkout", err)
		}
	}

	var auth transport.AuthMethod
	if opts.Token != "" {
		auth = &githttp.BasicAuth{
			Username: "oauth2", // common for tokens
			Password: opts.Token,
		}
	}

	slog.Info("cloning repository", "url", opts.URL, "dir", opts.Dir)
	_, err := git.PlainCloneContext(ctx, opts.Dir, false, &git.CloneOptions{
		URL:  opts.URL,
		Auth: auth,
	})
	if err != nil {
		return apperrors.WrapWithContext(
			apperrors.ErrCodeCommandFailed,
			"failed to clone repository",
			err,
			map[string]any{"url": opts.URL},
		)
	}

	return nil
}
