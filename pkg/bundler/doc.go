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

// Package bundler persists a collected snapshot to disk and manages
// the archive lifecycle.
//
// A run produces one timestamped directory under the output directory:
//
//	bundle_2026-08-24_10-15-30/
//	  node-logs/<service>.log
//	  pod-logs/<namespace>/<pod>_<container>.log
//	  cluster-config.yaml
//	  node-metrics.yaml
//	  versions.yaml
//	  summary.yaml
//
// Failed items are written as .err files next to where their .log
// would be; a wholesale category failure becomes <category>.err at the
// top level. The directory is then compressed into
// bundle_<timestamp>.tar.gz under the archive directory, and the
// retention sweep deletes archives older than the configured window.
package bundler
