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
	"sort"
)

// Status tags a Result as either a successful payload or a failure.
type Status string

const (
	// StatusOK marks a successfully collected payload.
	StatusOK Status = "ok"
	// StatusFailed marks an item that could not be collected.
	StatusFailed Status = "failed"
)

// Result is the outcome for a single logical key within a category:
// either a text payload or a failure with a human-readable cause.
// Consumers switch on Status instead of probing payload prefixes.
type Result struct {
	Status Status `json:"status" yaml:"status"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Ok returns a successful Result carrying the given payload.
func Ok(output string) Result {
	return Result{Status: StatusOK, Output: output}
}

// Failed returns a failure Result with the given cause.
func Failed(reason string) Result {
	return Result{Status: StatusFailed, Error: reason}
}

// Failedf returns a failure Result with a formatted cause.
func Failedf(format string, args ...any) Result {
	return Failed(fmt.Sprintf(format, args...))
}

// OK reports whether the result carries a payload.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// SourceResult maps logical keys (service name, namespace/pod/container,
// component name) to per-item results. Keys are unique within one
// collector's output.
type SourceResult map[string]Result

// Failures counts the failed items.
func (s SourceResult) Failures() int {
	n := 0
	for _, r := range s {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Errors returns the failure causes keyed by item, sorted by key for
// stable display.
func (s SourceResult) Errors() []string {
	keys := make([]string, 0, len(s))
	for k, r := range s {
		if !r.OK() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	errs := make([]string, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, fmt.Sprintf("%s: %s", k, s[k].Error))
	}
	return errs
}
