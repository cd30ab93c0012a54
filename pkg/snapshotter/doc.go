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

// Package snapshotter orchestrates a collection run across the enabled
// categories and aggregates the results into a snapshot.
//
// Collectors are driven either sequentially or concurrently; either
// discipline produces the same snapshot because every collector runs
// under isolation: an error or panic inside one collector is converted
// into a failure marker for that category and never aborts the run.
// The single fatal condition is an output location that cannot be
// created or written.
package snapshotter
