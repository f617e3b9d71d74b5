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

package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

const documentSeparator = "---\n"

// RenderYAML serializes the pair as one multi-document YAML manifest,
// deployment first.
func (p *Pair) RenderYAML() ([]byte, error) {
	var buf bytes.Buffer

	for _, obj := range []any{p.Deployment, p.Service} {
		out, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to render manifest: %w", err)
		}
		buf.WriteString(documentSeparator)
		buf.Write(out)
	}

	return buf.Bytes(), nil
}

// WriteBundle writes the rendered pair into dir as separate deployment and
// service files, creating dir if needed. The resulting directory is suitable
// for archival as an OCI artifact.
func (p *Pair) WriteBundle(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create bundle dir: %w", err)
	}

	files := map[string]any{
		"deployment.yaml": p.Deployment,
		"service.yaml":    p.Service,
	}
	for name, obj := range files {
		out, err := yaml.Marshal(obj)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
