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
	"context"
	"encoding/json"

	apperrors "github.com/example/shipctl/pkg/errors"
	"github.com/example/shipctl/pkg/version"
)

// MinToolVersion is the oldest cluster tool release the reconciler is known
// to work with; update-context and JSON status output changed before this.
var MinToolVersion = version.MustParseVersion("1.26.0")

// toolVersion is the tool's machine-readable version report.
type toolVersion struct {
	Version string `json:"minikubeVersion"`
}

// CheckToolVersion verifies the located cluster tool is recent enough to
// honor the commands the reconciler issues.
func (r *Reconciler) CheckToolVersion(ctx context.Context) error {
	out, err := r.runner.Run(ctx, "version", "--output=json")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCommandFailed, "tool version query failed", err)
	}

	var tv toolVersion
	if err := json.Unmarshal([]byte(out), &tv); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "unexpected tool version output", err)
	}

	v, err := version.ParseVersion(tv.Version)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "unparseable tool version", err)
	}

	if !v.EqualsOrNewer(MinToolVersion) {
		return apperrors.NewWithContext(
			apperrors.ErrCodeUnavailable,
			"cluster tool too old",
			map[string]any{"version": v.String(), "minimum": MinToolVersion.String()},
		)
	}
	return nil
}
