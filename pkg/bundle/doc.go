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

// Package bundle defines the data model shared by collectors, the
// snapshotter, and persistence: the immutable per-run Request, tagged
// per-item Results, the aggregated Snapshot, and the derived Report.
//
// A completed Snapshot has exactly one entry per enabled category and no
// entries for skipped categories; the Report is computed purely from the
// Snapshot, so its counts can always be re-derived from the raw bundle.
package bundle
