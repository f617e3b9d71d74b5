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

package defaults

const (
	// AppName is the deployment, service, and image repository name used
	// when the caller does not supply one.
	AppName = "my-appscript-7333"

	// ImageTag is the image tag applied when none is given.
	ImageTag = "latest"

	// Namespace is the target cluster namespace.
	Namespace = "default"

	// ContainerPort is the port the application is assumed to listen on
	// inside the container.
	ContainerPort = 8000

	// ClusterContext is the kubeconfig context name of the local
	// single-node cluster.
	ClusterContext = "minikube"

	// ClusterTool is the cluster-management binary the reconciler drives.
	ClusterTool = "minikube"
)
