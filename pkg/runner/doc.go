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

// Package runner executes external diagnostic commands (journalctl,
// helm, kubectl, version probes) with a hard timeout and a uniform
// (ok, output) contract. It never returns an error and never panics,
// so collectors can treat any failure as data.
//
// When clusterdiag itself runs inside a container, commands are wrapped
// in an nsenter prefix so host services can still be inspected. The
// rewrite is invisible to callers.
package runner
