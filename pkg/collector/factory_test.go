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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/collector/cluster"
	"github.com/edgebundle/clusterdiag/pkg/collector/metrics"
	"github.com/edgebundle/clusterdiag/pkg/collector/pod"
)

func TestNewDefaultFactoryDefaults(t *testing.T) {
	f := NewDefaultFactory()
	require.NotNil(t, f.Runner)
}

func TestFactoryCreatesAllCollectors(t *testing.T) {
	f := NewDefaultFactory(WithClientset(fake.NewClientset()))

	assert.NotNil(t, f.CreateNodeLogCollector())
	assert.NotNil(t, f.CreateClusterConfigCollector())
	assert.NotNil(t, f.CreatePodLogCollector())
	assert.NotNil(t, f.CreateMetricsCollector())
	assert.NotNil(t, f.CreateVersionCollector())
}

func TestFactoryPropagatesRequest(t *testing.T) {
	req := bundle.NewRequest(t.TempDir(), t.TempDir())
	req.Namespaces = []string{"kube-system"}
	req.MaxLogLines = 250

	f := NewDefaultFactory(
		WithClientset(fake.NewClientset()),
		WithRequest(req),
	)

	c, ok := f.CreatePodLogCollector().(*pod.Collector)
	require.True(t, ok)
	assert.Equal(t, []string{"kube-system"}, c.Namespaces)
	assert.Equal(t, int64(250), c.MaxLogLines)
}

func TestFactoryWithoutClientset(t *testing.T) {
	f := NewDefaultFactory(WithClientsetError(errors.New("no kubeconfig")))

	// Pod logs degrade to a wholesale failure carrying the cause.
	_, err := f.CreatePodLogCollector().Collect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kubernetes client unavailable")
	assert.Contains(t, err.Error(), "no kubeconfig")

	// Metrics still record a failed entry under the nodes key.
	res, err := f.CreateMetricsCollector().Collect(context.Background())
	require.NoError(t, err)
	assert.False(t, res[metrics.KeyNodes].OK())
	assert.Contains(t, res[metrics.KeyNodes].Error, "no kubeconfig")

	// Cluster config keeps its runner-backed sub-steps and carries the
	// cause for the API-backed ones.
	cc, ok := f.CreateClusterConfigCollector().(*cluster.Collector)
	require.True(t, ok)
	require.Error(t, cc.ClientsetErr)
	assert.Contains(t, cc.ClientsetErr.Error(), "no kubeconfig")
}
