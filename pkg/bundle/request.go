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

package bundle

import (
	"time"

	"github.com/edgebundle/clusterdiag/pkg/defaults"
	"github.com/edgebundle/clusterdiag/pkg/errors"
)

// Category identifies one of the five data-source types.
type Category string

const (
	// CategoryNodeLogs covers host service logs (journalctl and friends).
	CategoryNodeLogs Category = "node-logs"
	// CategoryClusterConfig covers namespaces, releases, and provisioning logs.
	CategoryClusterConfig Category = "cluster-config"
	// CategoryPodLogs covers per-container pod logs.
	CategoryPodLogs Category = "pod-logs"
	// CategoryMetrics covers node resource metrics.
	CategoryMetrics Category = "node-metrics"
	// CategoryVersions covers component version probes.
	CategoryVersions Category = "versions"
)

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryNodeLogs,
		CategoryClusterConfig,
		CategoryPodLogs,
		CategoryMetrics,
		CategoryVersions,
	}
}

// Request is the immutable configuration for one collection run. It is
// constructed once at startup and passed to every component; collectors
// never read configuration from the environment.
type Request struct {
	// OutputDir is where run directories are written.
	OutputDir string `json:"outputDir" yaml:"outputDir"`

	// ArchiveDir is where compressed archives are written and swept.
	ArchiveDir string `json:"archiveDir" yaml:"archiveDir"`

	// MaxLogLines caps trailing log lines fetched per container.
	MaxLogLines int64 `json:"maxLogLines" yaml:"maxLogLines"`

	// Namespaces limits pod log collection to the listed namespaces.
	// Empty means all namespaces.
	Namespaces []string `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`

	// Skip disables individual categories for this run.
	Skip map[Category]bool `json:"skip,omitempty" yaml:"skip,omitempty"`

	// CommandTimeout bounds each external command invocation.
	CommandTimeout time.Duration `json:"commandTimeout" yaml:"commandTimeout"`

	// RetentionDays is the archive retention window.
	RetentionDays int `json:"retentionDays" yaml:"retentionDays"`

	// Parallel selects the bounded-parallel execution discipline. The
	// resulting snapshot content is identical either way.
	Parallel bool `json:"parallel" yaml:"parallel"`

	// MinFreeBytes is the free-space floor checked at initialization.
	MinFreeBytes uint64 `json:"minFreeBytes" yaml:"minFreeBytes"`
}

// NewRequest returns a Request with defaults applied for the given
// output and archive directories.
func NewRequest(outputDir, archiveDir string) Request {
	return Request{
		OutputDir:      outputDir,
		ArchiveDir:     archiveDir,
		MaxLogLines:    defaults.MaxPodLogLines,
		CommandTimeout: defaults.CommandTimeout,
		RetentionDays:  defaults.RetentionDays,
		MinFreeBytes:   defaults.MinFreeBytes,
	}
}

// Validate checks that the request can drive a run.
func (r Request) Validate() error {
	if r.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "output directory is required")
	}
	if r.ArchiveDir == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "archive directory is required")
	}
	if r.MaxLogLines <= 0 {
		return errors.Newf(errors.ErrCodeInvalidRequest, "max log lines must be positive, got %d", r.MaxLogLines)
	}
	if r.CommandTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "command timeout must be positive")
	}
	if r.RetentionDays < 0 {
		return errors.Newf(errors.ErrCodeInvalidRequest, "retention days must not be negative, got %d", r.RetentionDays)
	}
	return nil
}

// Skipped reports whether the category is disabled for this run.
func (r Request) Skipped(c Category) bool {
	return r.Skip[c]
}

// Enabled lists the categories this run will collect, in display order.
func (r Request) Enabled() []Category {
	var out []Category
	for _, c := range Categories() {
		if !r.Skipped(c) {
			out = append(out, c)
		}
	}
	return out
}
