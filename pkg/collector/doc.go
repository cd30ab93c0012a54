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

// Package collector provides interfaces and implementations for collecting diagnostic data.
//
// # Overview
//
// This package defines a unified interface for gathering diagnostics from
// various sources including the Kubernetes API, systemd journals, the helm
// CLI, and the metrics-server aggregated API. Collectors are independent
// and best-effort: each returns a result map in which individual failures
// are annotated inline rather than aborting the run.
//
// # Core Interface
//
// The Collector interface defines a single method for gathering data:
//
//	type Collector interface {
//	    Collect(ctx context.Context) (bundle.SourceResult, error)
//	}
//
// The error return is reserved for wholesale failures where no per-item
// data could be produced; everything less severe is recorded inside the
// SourceResult. All collectors support context-based cancellation.
//
// # Factory Pattern
//
// The Factory interface enables dependency injection and testing by
// abstracting collector creation:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithClientset(clientset),
//	    collector.WithRequest(req),
//	)
//	podLogs := factory.CreatePodLogCollector()
//
// # Subpackages
//
// The collector package is organized into subpackages by data source:
//   - collector/node - systemd service journal collectors
//   - collector/cluster - cluster configuration collectors
//   - collector/pod - per-container log collectors
//   - collector/metrics - node resource metrics collectors
//   - collector/version - component version probes
package collector
