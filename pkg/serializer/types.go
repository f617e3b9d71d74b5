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

// Package serializer renders deployment results in various output formats.
//
// Three formats are supported:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable configuration format
//   - Table: flattened key/value rows for terminal output
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatJSON, os.Stdout)
//	defer writer.Close()
//	if err := writer.Serialize(ctx, result); err != nil {
//		return err
//	}
package serializer

import "context"

// Serializer renders a result value to the configured destination.
//
// The context parameter exists for cancellation; stdout and file writes do
// not actively use it.
type Serializer interface {
	Serialize(ctx context.Context, result any) error
}

// Closer is an optional interface for Serializers holding resources such
// as file handles.
type Closer interface {
	Close() error
}
