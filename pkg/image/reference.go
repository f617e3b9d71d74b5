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
	"fmt"

	"github.com/distribution/reference"

	apperrors "github.com/example/shipctl/pkg/errors"
)

// DefaultTag is applied when the caller does not specify an image tag.
const DefaultTag = "latest"

// Reference identifies the image produced by one invocation. It is composed
// once, before the build, and the same value is used for the build tag and
// the push target.
type Reference struct {
	// User is the registry user or namespace that owns the image.
	User string
	// App is the application name, doubling as the repository name.
	App string
	// Tag is the image tag.
	Tag string
}

// NewReference composes and validates a {user}/{app}:{tag} reference.
// An empty tag defaults to DefaultTag.
func NewReference(user, app, tag string) (Reference, error) {
	if user == "" {
		return Reference{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "registry user is required")
	}
	if app == "" {
		return Reference{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "application name is required")
	}
	if tag == "" {
		tag = DefaultTag
	}

	r := Reference{User: user, App: app, Tag: tag}
	if _, err := reference.ParseNormalizedNamed(r.String()); err != nil {
		return Reference{}, apperrors.WrapWithContext(
			apperrors.ErrCodeInvalidRequest,
			"invalid image reference",
			err,
			map[string]any{"reference": r.String()},
		)
	}
	return r, nil
}

// String returns the Docker-style image reference.
func (r Reference) String() string {
	return fmt.Sprintf("%s/%s:%s", r.User, r.App, r.Tag)
}
