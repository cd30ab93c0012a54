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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Collection run metrics
	collectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clusterdiag_collection_duration_seconds",
			Help:    "Time taken to complete a full collection run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	collectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterdiag_collection_total",
			Help: "Total number of collection runs",
		},
		[]string{"status"}, // success, partial, or error
	)

	categoryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clusterdiag_category_duration_seconds",
			Help:    "Time taken by individual category collectors",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"category"},
	)

	categoryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterdiag_category_failures_total",
			Help: "Total number of wholesale category collection failures",
		},
		[]string{"category"},
	)
)
