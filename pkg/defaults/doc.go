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

// Package defaults provides centralized configuration constants for shipctl.
//
// These are the values applied when the caller leaves an optional flag
// unset. Centralizing them keeps the CLI surface and the deploy pipeline in
// agreement and makes tuning easier.
//
// Deliberately absent: timeouts for external commands. The pipeline imposes
// none; each external tool's own timeout behavior governs.
package defaults
