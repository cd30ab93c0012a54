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
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/collector"
)

// Snapshotter orchestrates one collection run: it prepares the output
// location, drives every enabled collector, and aggregates the results
// into a Snapshot. Collector failures are isolated per category, so a
// crashing or erroring collector costs only its own category.
type Snapshotter struct {
	// Request describes what to collect and where to put it.
	Request bundle.Request

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Version is the tool version recorded in logs.
	Version string
}

// Run executes a full collection pass and returns the snapshot. The
// only fatal condition is an unusable output location; every collector
// failure is recorded in the snapshot instead of returned.
func (s *Snapshotter) Run(ctx context.Context) (*bundle.Snapshot, error) {
	if s.Factory == nil {
		s.Factory = collector.NewDefaultFactory(collector.WithRequest(s.Request))
	}

	slog.Info("initializing collection run",
		"output", s.Request.OutputDir,
		"version", s.Version)

	if err := s.prepareOutput(); err != nil {
		collectionTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	start := time.Now()
	defer func() {
		collectionDuration.Observe(time.Since(start).Seconds())
	}()

	snap := bundle.NewSnapshot(start)
	enabled := s.Request.Enabled()

	slog.Info("collecting", "run_id", snap.RunID, "categories", len(enabled))

	if s.Request.Parallel {
		s.collectParallel(ctx, snap, enabled)
	} else {
		s.collectSequential(ctx, snap, enabled)
	}

	failed := 0
	for _, res := range snap.Categories {
		if res.Failed {
			failed++
		}
	}
	if failed > 0 {
		collectionTotal.WithLabelValues("partial").Inc()
	} else {
		collectionTotal.WithLabelValues("success").Inc()
	}

	slog.Info("collection complete",
		"run_id", snap.RunID,
		"collected", len(snap.Categories)-failed,
		"failed", failed,
		"duration", time.Since(start).Round(time.Millisecond).String())

	return snap, nil
}

// collectSequential runs each enabled collector in turn, in the stable
// category order.
func (s *Snapshotter) collectSequential(ctx context.Context, snap *bundle.Snapshot, enabled []bundle.Category) {
	for _, cat := range enabled {
		snap.Set(cat, s.collectOne(ctx, cat))
	}
}

// collectParallel runs the enabled collectors concurrently. Category
// isolation means no collector error propagates through the group, so
// the resulting snapshot is identical to a sequential run.
func (s *Snapshotter) collectParallel(ctx context.Context, snap *bundle.Snapshot, enabled []bundle.Category) {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, cat := range enabled {
		g.Go(func() error {
			res := s.collectOne(gctx, cat)
			mu.Lock()
			snap.Set(cat, res)
			mu.Unlock()
			return nil
		})
	}

	// No goroutine returns an error, so Wait only synchronizes.
	_ = g.Wait()
}

// collectOne resolves the collector for a category and runs it under
// isolation, timing the attempt.
func (s *Snapshotter) collectOne(ctx context.Context, cat bundle.Category) bundle.CategoryResult {
	start := time.Now()
	defer func() {
		categoryDuration.WithLabelValues(string(cat)).Observe(time.Since(start).Seconds())
	}()

	c := s.collectorFor(cat)
	res := isolate(ctx, cat, c)
	if res.Failed {
		categoryFailures.WithLabelValues(string(cat)).Inc()
		slog.Error("category collection failed",
			"category", string(cat),
			"error", res.Error)
	} else {
		slog.Info("category collected",
			"category", string(cat),
			"items", len(res.Items))
	}
	return res
}

func (s *Snapshotter) collectorFor(cat bundle.Category) collector.Collector {
	switch cat {
	case bundle.CategoryNodeLogs:
		return s.Factory.CreateNodeLogCollector()
	case bundle.CategoryClusterConfig:
		return s.Factory.CreateClusterConfigCollector()
	case bundle.CategoryPodLogs:
		return s.Factory.CreatePodLogCollector()
	case bundle.CategoryMetrics:
		return s.Factory.CreateMetricsCollector()
	case bundle.CategoryVersions:
		return s.Factory.CreateVersionCollector()
	}
	return nil
}

// isolate runs a collector and converts any outcome into a
// CategoryResult. A returned error or an escaped panic becomes a
// wholesale category failure; neither crosses the category boundary.
func isolate(ctx context.Context, cat bundle.Category, c collector.Collector) (res bundle.CategoryResult) {
	defer func() {
		if r := recover(); r != nil {
			res = bundle.CategoryFailed(fmt.Sprintf("collector panicked: %v", r))
		}
	}()

	if c == nil {
		return bundle.CategoryFailed(fmt.Sprintf("no collector registered for category %s", cat))
	}

	items, err := c.Collect(ctx)
	if err != nil {
		return bundle.CategoryFailed(err.Error())
	}
	return bundle.Collected(items)
}
