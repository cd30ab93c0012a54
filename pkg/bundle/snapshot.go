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

	"github.com/google/uuid"
)

// CategoryResult is the outcome of one enabled category: either the
// per-item results of a collector that ran, or a wholesale failure when
// the collector itself could not produce data.
type CategoryResult struct {
	// Failed marks a category whose collector failed before producing
	// per-item results.
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`

	// Error carries the wholesale failure cause when Failed is set.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Items holds the per-key results when the collector ran.
	Items SourceResult `json:"items,omitempty" yaml:"items,omitempty"`
}

// Collected returns a CategoryResult for a collector that ran.
func Collected(items SourceResult) CategoryResult {
	return CategoryResult{Items: items}
}

// CategoryFailed returns a wholesale-failure CategoryResult.
func CategoryFailed(reason string) CategoryResult {
	return CategoryResult{Failed: true, Error: reason}
}

// Snapshot aggregates the results of one run. It has an entry for every
// enabled category and no entry for skipped ones.
type Snapshot struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId" yaml:"runId"`

	// StartTime is when collection began.
	StartTime time.Time `json:"startTime" yaml:"startTime"`

	// Categories holds the per-category outcomes.
	Categories map[Category]CategoryResult `json:"categories" yaml:"categories"`
}

// NewSnapshot creates an empty snapshot with a fresh run ID.
func NewSnapshot(start time.Time) *Snapshot {
	return &Snapshot{
		RunID:      uuid.NewString(),
		StartTime:  start,
		Categories: make(map[Category]CategoryResult),
	}
}

// Set records the outcome for a category.
func (s *Snapshot) Set(c Category, res CategoryResult) {
	s.Categories[c] = res
}

// Has reports whether the category is present in the snapshot.
func (s *Snapshot) Has(c Category) bool {
	_, ok := s.Categories[c]
	return ok
}
