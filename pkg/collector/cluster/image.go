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
	"sort"
	"strings"

	"github.com/distribution/reference"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
)

// collectImages builds the unique container image inventory across all
// pods (regular, init, and ephemeral containers). References that do
// not parse are kept verbatim so nothing disappears from the bundle.
func (c *Collector) collectImages(ctx context.Context) bundle.Result {
	if c.Clientset == nil {
		return bundle.Failedf("failed to list pods for image inventory: %s", c.clientUnavailable())
	}

	pods, err := c.Clientset.CoreV1().Pods("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return bundle.Failedf("failed to list pods for image inventory: %v", err)
	}

	unique := make(map[string]struct{})
	record := func(imageRef string) {
		if imageRef == "" {
			return
		}
		unique[normalizeImageRef(imageRef)] = struct{}{}
	}

	for _, pod := range pods.Items {
		for _, container := range pod.Spec.Containers {
			record(container.Image)
		}
		for _, container := range pod.Spec.InitContainers {
			record(container.Image)
		}
		for _, container := range pod.Spec.EphemeralContainers {
			record(container.Image)
		}
	}

	images := make([]string, 0, len(unique))
	for img := range unique {
		images = append(images, img)
	}
	sort.Strings(images)

	slog.Debug("collected container images", "count", len(images))
	return bundle.Ok(strings.Join(images, "\n"))
}

// normalizeImageRef canonicalizes an image reference via the docker
// reference grammar, e.g. "nginx" becomes "docker.io/library/nginx".
// Unparsable references are returned unchanged.
func normalizeImageRef(imageRef string) string {
	named, err := reference.ParseNormalizedNamed(imageRef)
	if err != nil {
		return imageRef
	}
	if tagged, ok := named.(reference.Tagged); ok {
		return named.Name() + ":" + tagged.Tag()
	}
	if digested, ok := named.(reference.Digested); ok {
		return named.Name() + "@" + digested.Digest().String()
	}
	return named.Name()
}
