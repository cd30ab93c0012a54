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

package cluster

import (
	"context"
	"log/slog"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/k8s/client"
	"github.com/edgebundle/clusterdiag/pkg/runner"
)

// Result keys within the cluster-config category.
const (
	KeyNamespaces   = "namespaces"
	KeyHelmReleases = "helm-releases"
	KeyProvisioning = "provisioning-logs"
	KeyImages       = "images"
)

// provisioningLogCommand captures bare-metal provisioning service logs.
const provisioningLogCommand = "journalctl -u ironic -u metal3 -n 1000 --no-pager"

// Collector gathers cluster-level configuration: the namespace list,
// installed Helm releases, provisioning service logs, and the unique
// container image inventory. Each sub-step fails independently.
type Collector struct {
	Clientset client.Interface
	Runner    runner.Interface

	// ClientsetErr explains a nil Clientset. The API-backed sub-steps
	// record it inline; the runner-backed sub-steps are unaffected.
	ClientsetErr error
}

// Collect runs all sub-steps and returns whatever subset succeeded,
// with failed sub-steps recorded inline under their keys.
func (c *Collector) Collect(ctx context.Context) (bundle.SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := make(bundle.SourceResult, 4)

	res[KeyNamespaces] = c.collectNamespaces(ctx)
	res[KeyHelmReleases] = c.collectHelmReleases(ctx)
	res[KeyProvisioning] = c.collectProvisioningLogs(ctx)
	res[KeyImages] = c.collectImages(ctx)

	return res, nil
}

func (c *Collector) collectNamespaces(ctx context.Context) bundle.Result {
	if c.Clientset == nil {
		return bundle.Failedf("failed to list namespaces: %s", c.clientUnavailable())
	}

	namespaces, err := c.Clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return bundle.Failedf("failed to list namespaces: %v", err)
	}

	names := make([]string, 0, len(namespaces.Items))
	for _, ns := range namespaces.Items {
		names = append(names, ns.Name)
	}

	slog.Debug("collected namespaces", "count", len(names))
	return bundle.Ok(strings.Join(names, "\n"))
}

// clientUnavailable renders the reason the API-backed sub-steps cannot
// run.
func (c *Collector) clientUnavailable() string {
	if c.ClientsetErr != nil {
		return c.ClientsetErr.Error()
	}
	return "kubernetes client unavailable"
}

func (c *Collector) collectProvisioningLogs(ctx context.Context) bundle.Result {
	ok, out := c.Runner.Run(ctx, provisioningLogCommand, true)
	if !ok {
		return bundle.Failedf("failed to collect provisioning logs: %s", out)
	}
	return bundle.Ok(out)
}
