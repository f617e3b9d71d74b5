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

package deployer

import (
	"time"
)

// Stage names, in execution order.
const (
	StageLocateTool   = "locate-tool"
	StageFetchSource  = "fetch-source"
	StagePublishImage = "publish-image"
	StageReconcile    = "reconcile-cluster"
)

// StageStatus is the outcome of a single pipeline stage.
type StageStatus string

const (
	// StageSucceeded means the stage completed.
	StageSucceeded StageStatus = "succeeded"
	// StageFailed means the stage returned an error; later stages do not run.
	StageFailed StageStatus = "failed"
	// StageSkipped means an earlier stage failed before this one started.
	StageSkipped StageStatus = "skipped"
)

// StageResult records the outcome of one pipeline stage.
type StageResult struct {
	// Name identifies the stage.
	Name string `json:"name" yaml:"name"`
	// Status is the stage outcome.
	Status StageStatus `json:"status" yaml:"status"`
	// Detail carries a stage-specific value: the located tool path, the
	// pushed image reference, or the failure message.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	// Duration is the stage wall-clock time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result is the outcome of a full deployment run. A failed run still
// carries the results of the stages that executed.
type Result struct {
	// ID uniquely identifies the run.
	ID string `json:"id" yaml:"id"`
	// App is the deployed application name.
	App string `json:"app" yaml:"app"`
	// Image is the pushed image reference.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
	// Namespace is the target cluster namespace.
	Namespace string `json:"namespace" yaml:"namespace"`
	// URL is the application access URL; empty when the run failed before
	// the cluster stage completed.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
	// Stages holds per-stage outcomes in execution order.
	Stages []StageResult `json:"stages" yaml:"stages"`
	// Duration is the total run wall-clock time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
