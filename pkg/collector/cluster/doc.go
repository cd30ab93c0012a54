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

// Package cluster collects cluster-level configuration state: the
// namespace list and container image inventory from the API server,
// Helm releases through the helm CLI, and bare-metal provisioning
// service logs through journalctl. Sub-steps fail independently so the
// bundle always carries whatever subset was reachable.
package cluster
