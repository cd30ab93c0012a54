// Copyright (c) 2025, the clusterdiag authors.
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

import "time"

// Command execution limits.
const (
	// CommandTimeout is the upper bound for a single external command.
	// A timed-out command is reported as failed, never retried.
	CommandTimeout = 60 * time.Second

	// K8sCallTimeout is the timeout for individual Kubernetes API calls.
	K8sCallTimeout = 30 * time.Second
)

// Collection limits.
const (
	// MaxPodLogLines is the default number of trailing log lines
	// fetched per container.
	MaxPodLogLines = 1000

	// PodLogConcurrency caps concurrent per-container log fetches.
	// The cap is fixed so a large cluster cannot scale the fan-out.
	PodLogConcurrency = 8

	// PodLogFetchRate is the sustained per-second rate of container
	// log requests against the API server.
	PodLogFetchRate = 20

	// CollectionTimeout is the default bound for a whole collection run.
	CollectionTimeout = 15 * time.Minute
)

// Storage limits.
const (
	// RetentionDays is the default age after which archives are deleted.
	RetentionDays = 30

	// MinFreeBytes is the free-space floor below which the run logs a
	// critical warning during initialization (100MB).
	MinFreeBytes = 100 * 1024 * 1024

	// LowFreePercent is the free-space percentage below which the run
	// logs a low-disk warning.
	LowFreePercent = 10.0
)
