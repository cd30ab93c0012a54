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
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
)

// helmListCommand lists every release in every namespace.
const helmListCommand = "helm list -A -o yaml"

// helmRelease is the subset of the helm list output we keep.
type helmRelease struct {
	Name       string `yaml:"name"`
	Namespace  string `yaml:"namespace"`
	Chart      string `yaml:"chart"`
	AppVersion string `yaml:"app_version"`
	Status     string `yaml:"status"`
}

// collectHelmReleases shells out to helm and re-renders its structured
// output as one line per release, sorted for stable bundles.
func (c *Collector) collectHelmReleases(ctx context.Context) bundle.Result {
	ok, out := c.Runner.Run(ctx, helmListCommand, false)
	if !ok {
		return bundle.Failedf("failed to fetch helm releases: %s", out)
	}

	var releases []helmRelease
	if err := yaml.Unmarshal([]byte(out), &releases); err != nil {
		return bundle.Failedf("failed to parse helm releases: %v", err)
	}

	lines := make([]string, 0, len(releases))
	for _, rel := range releases {
		lines = append(lines, fmt.Sprintf("%s/%s chart=%s appVersion=%s status=%s",
			rel.Namespace, rel.Name, rel.Chart, rel.AppVersion, rel.Status))
	}
	sort.Strings(lines)

	slog.Debug("collected helm releases", "count", len(releases))
	return bundle.Ok(strings.Join(lines, "\n"))
}
