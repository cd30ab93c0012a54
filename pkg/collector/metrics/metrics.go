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

package metrics

import (
	"context"
	"log/slog"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/k8s/client"
)

// KeyNodes is the single result key within the node-metrics category.
const KeyNodes = "nodes"

// nodeMetricsPath is the metrics-server aggregated API endpoint.
const nodeMetricsPath = "/apis/metrics.k8s.io/v1beta1/nodes"

// NodeMetricsLister fetches the raw node metrics document. The metrics
// API is an aggregated endpoint, so it is addressed by path rather
// than through a typed clientset.
type NodeMetricsLister interface {
	ListNodeMetrics(ctx context.Context) ([]byte, error)
}

// restLister reads the aggregated endpoint through the core REST client.
type restLister struct {
	clientset client.Interface
}

func (l *restLister) ListNodeMetrics(ctx context.Context) ([]byte, error) {
	return l.clientset.CoreV1().RESTClient().
		Get().
		AbsPath(nodeMetricsPath).
		DoRaw(ctx)
}

// NewRESTLister returns a lister backed by the given clientset's REST
// client.
func NewRESTLister(clientset client.Interface) NodeMetricsLister {
	return &restLister{clientset: clientset}
}

// unavailableLister reports a fixed cause for every fetch. Used when no
// API client could be constructed, so the bundle still records the
// attempt under the nodes key.
type unavailableLister struct {
	cause error
}

func (l unavailableLister) ListNodeMetrics(context.Context) ([]byte, error) {
	return nil, l.cause
}

// UnavailableLister returns a lister that fails every fetch with the
// given cause.
func UnavailableLister(cause error) NodeMetricsLister {
	return unavailableLister{cause: cause}
}

// Collector gathers node resource usage from the metrics-server API.
// Clusters without metrics-server are common, so an unreachable API
// produces a failed entry under the nodes key instead of an error.
type Collector struct {
	Lister NodeMetricsLister
}

func (c *Collector) Collect(ctx context.Context) (bundle.SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := make(bundle.SourceResult, 1)

	raw, err := c.Lister.ListNodeMetrics(ctx)
	if err != nil {
		res[KeyNodes] = bundle.Failedf("failed to fetch node metrics: %v", err)
		return res, nil
	}

	slog.Debug("collected node metrics", "bytes", len(raw))
	res[KeyNodes] = bundle.Ok(string(raw))
	return res, nil
}
