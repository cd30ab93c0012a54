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
	"fmt"
	"time"
)

// CategoryStatus is the per-category outcome shown in the summary.
type CategoryStatus string

const (
	// StatusSkipped marks a category disabled by the request.
	StatusSkipped CategoryStatus = "skipped"
	// StatusCollected marks a category whose collector ran.
	StatusCollected CategoryStatus = "collected"
	// StatusCategoryFailed marks a category whose collector failed wholesale.
	StatusCategoryFailed CategoryStatus = "failed"
)

// CategorySummary is the derived view of one category in the report.
type CategorySummary struct {
	Status   CategoryStatus `json:"status" yaml:"status"`
	Items    int            `json:"items" yaml:"items"`
	Failures int            `json:"failures" yaml:"failures"`
}

// Report is the derived, read-only summary over a completed Snapshot.
// Every count is computed from the snapshot; there are no side counters.
type Report struct {
	// RunID matches the snapshot's run ID.
	RunID string `json:"runId" yaml:"runId"`

	// Timestamp is when the report was built (end of collection).
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// DurationSeconds is the wall-clock collection time.
	DurationSeconds float64 `json:"durationSeconds" yaml:"durationSeconds"`

	// Request is the configuration in effect for the run.
	Request Request `json:"request" yaml:"request"`

	// Categories summarizes every category, including skipped ones.
	Categories map[Category]CategorySummary `json:"categories" yaml:"categories"`

	// Errors flattens every failure recorded in the snapshot.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// BuildReport derives the summary report from a completed snapshot.
// It is computed once after collection; the result is never mutated.
func BuildReport(snap *Snapshot, req Request, now time.Time) *Report {
	rep := &Report{
		RunID:           snap.RunID,
		Timestamp:       now,
		DurationSeconds: now.Sub(snap.StartTime).Seconds(),
		Request:         req,
		Categories:      make(map[Category]CategorySummary, len(Categories())),
	}

	for _, c := range Categories() {
		res, ok := snap.Categories[c]
		switch {
		case !ok:
			rep.Categories[c] = CategorySummary{Status: StatusSkipped}
		case res.Failed:
			rep.Categories[c] = CategorySummary{Status: StatusCategoryFailed}
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s: %s", c, res.Error))
		default:
			rep.Categories[c] = CategorySummary{
				Status:   StatusCollected,
				Items:    len(res.Items),
				Failures: res.Items.Failures(),
			}
			for _, e := range res.Items.Errors() {
				rep.Errors = append(rep.Errors, fmt.Sprintf("%s: %s", c, e))
			}
		}
	}

	return rep
}
