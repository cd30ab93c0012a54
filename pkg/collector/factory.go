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

package collector

import (
	"context"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/collector/cluster"
	"github.com/edgebundle/clusterdiag/pkg/collector/metrics"
	"github.com/edgebundle/clusterdiag/pkg/collector/node"
	"github.com/edgebundle/clusterdiag/pkg/collector/pod"
	"github.com/edgebundle/clusterdiag/pkg/collector/version"
	"github.com/edgebundle/clusterdiag/pkg/errors"
	"github.com/edgebundle/clusterdiag/pkg/k8s/client"
	"github.com/edgebundle/clusterdiag/pkg/runner"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateNodeLogCollector() Collector
	CreateClusterConfigCollector() Collector
	CreatePodLogCollector() Collector
	CreateMetricsCollector() Collector
	CreateVersionCollector() Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Runner    runner.Interface
	Clientset client.Interface
	Request   bundle.Request

	// ClientsetErr records why no clientset could be built. When the
	// clientset is absent, API-backed collectors report this cause as
	// recorded failures instead of attempting API calls; runner-backed
	// collection is unaffected.
	ClientsetErr error
}

// Option customizes the default factory.
type Option func(*DefaultFactory)

// WithRunner overrides the command runner.
func WithRunner(r runner.Interface) Option {
	return func(f *DefaultFactory) { f.Runner = r }
}

// WithClientset overrides the orchestration API client.
func WithClientset(c client.Interface) Option {
	return func(f *DefaultFactory) { f.Clientset = c }
}

// WithRequest supplies the collection request the collectors serve.
func WithRequest(req bundle.Request) Option {
	return func(f *DefaultFactory) { f.Request = req }
}

// WithClientsetError marks the clientset as unavailable with the cause.
func WithClientsetError(err error) Option {
	return func(f *DefaultFactory) { f.ClientsetErr = err }
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{}
	for _, opt := range opts {
		opt(f)
	}
	if f.Runner == nil {
		f.Runner = runner.New()
	}
	return f
}

// CreateNodeLogCollector creates a node service log collector.
func (f *DefaultFactory) CreateNodeLogCollector() Collector {
	return &node.Collector{
		Runner:   f.Runner,
		Services: node.DefaultServices(),
		States:   node.NewDbusStater(),
	}
}

// CreateClusterConfigCollector creates a cluster configuration collector.
// Without a clientset the API-backed sub-steps record the cause inline
// while the runner-backed sub-steps still collect.
func (f *DefaultFactory) CreateClusterConfigCollector() Collector {
	c := &cluster.Collector{
		Clientset: f.Clientset,
		Runner:    f.Runner,
	}
	if f.Clientset == nil {
		c.ClientsetErr = f.clientsetCause()
	}
	return c
}

// CreatePodLogCollector creates a pod log collector.
func (f *DefaultFactory) CreatePodLogCollector() Collector {
	if f.Clientset == nil {
		return unavailableCollector{cause: f.clientsetCause()}
	}
	return &pod.Collector{
		Clientset:   f.Clientset,
		Namespaces:  f.Request.Namespaces,
		MaxLogLines: f.Request.MaxLogLines,
	}
}

// CreateMetricsCollector creates a node metrics collector.
func (f *DefaultFactory) CreateMetricsCollector() Collector {
	if f.Clientset == nil {
		return &metrics.Collector{
			Lister: metrics.UnavailableLister(f.clientsetCause()),
		}
	}
	return &metrics.Collector{
		Lister: metrics.NewRESTLister(f.Clientset),
	}
}

// clientsetCause explains the missing clientset to collectors that
// need one.
func (f *DefaultFactory) clientsetCause() error {
	return errors.Wrap(errors.ErrCodeSourceUnavailable,
		"kubernetes client unavailable", f.ClientsetErr)
}

// unavailableCollector stands in for a collector whose data source
// could not be constructed at all. The cause surfaces as a wholesale
// category failure.
type unavailableCollector struct {
	cause error
}

func (u unavailableCollector) Collect(context.Context) (bundle.SourceResult, error) {
	return nil, u.cause
}

// CreateVersionCollector creates a component version collector.
func (f *DefaultFactory) CreateVersionCollector() Collector {
	return &version.Collector{
		Runner: f.Runner,
		Probes: version.DefaultProbes(),
	}
}
