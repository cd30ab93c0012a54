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

package version

import (
	"context"
	"log/slog"
	"strings"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/runner"
)

// Probe names a component and the command that reports its version.
type Probe struct {
	Name    string
	Command string
}

// DefaultProbes covers the distribution, the package tooling, and the
// operators an edge cluster typically carries. Components that are not
// installed simply report as unavailable.
func DefaultProbes() []Probe {
	return []Probe{
		{Name: "k3s", Command: "k3s --version"},
		{Name: "rke2", Command: "rke2 --version"},
		{Name: "kubectl", Command: "kubectl version --client"},
		{Name: "helm", Command: "helm version --short"},
		{
			Name: "upgrade-controller",
			Command: "kubectl get deployment upgrade-controller " +
				"-n upgrade-controller-system " +
				"-o jsonpath='{.spec.template.spec.containers[0].image}'",
		},
		{
			Name: "endpoint-copier-operator",
			Command: "kubectl get deployment endpoint-copier-operator " +
				"-n endpoint-copier-operator " +
				"-o jsonpath='{.spec.template.spec.containers[0].image}'",
		},
		{
			Name: "metallb",
			Command: "kubectl get deployment metallb-controller " +
				"-n metallb-system " +
				"-o jsonpath='{.spec.template.spec.containers[0].image}'",
		},
	}
}

// Collector probes installed component versions. A probe that fails
// records the component as not available rather than failing the
// category; a cluster legitimately runs only one distribution.
type Collector struct {
	Runner runner.Interface
	Probes []Probe
}

func (c *Collector) Collect(ctx context.Context) (bundle.SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	probes := c.Probes
	if len(probes) == 0 {
		probes = DefaultProbes()
	}

	res := make(bundle.SourceResult, len(probes))
	for _, probe := range probes {
		ok, out := c.Runner.Run(ctx, probe.Command, true)
		if !ok {
			res[probe.Name] = bundle.Ok("not available: " + out)
			slog.Debug("component version unavailable", "component", probe.Name)
			continue
		}
		res[probe.Name] = bundle.Ok(strings.TrimSpace(out))
	}
	return res, nil
}
