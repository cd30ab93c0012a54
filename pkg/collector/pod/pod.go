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

package pod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/defaults"
	diagerrors "github.com/edgebundle/clusterdiag/pkg/errors"
	"github.com/edgebundle/clusterdiag/pkg/k8s/client"
)

// LogFetcher retrieves one container's trailing log lines.
type LogFetcher interface {
	FetchLogs(ctx context.Context, namespace, pod, container string, tailLines int64) (string, error)
}

// clientsetFetcher streams logs through the core API.
type clientsetFetcher struct {
	clientset client.Interface
}

func (f *clientsetFetcher) FetchLogs(ctx context.Context, namespace, pod, container string, tailLines int64) (string, error) {
	req := f.clientset.CoreV1().Pods(namespace).GetLogs(pod, &corev1.PodLogOptions{
		Container: container,
		TailLines: ptr.To(tailLines),
	})

	stream, err := req.Stream(ctx)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Collector fetches the log tail of every container in the selected
// namespaces. Fetches run on a bounded worker group and are rate
// limited so a large cluster does not hammer the API server.
type Collector struct {
	Clientset client.Interface

	// Namespaces restricts collection to the listed namespaces.
	// Empty means every namespace in the cluster.
	Namespaces []string

	// MaxLogLines caps the tail length per container.
	MaxLogLines int64

	// Concurrency bounds parallel log fetches. Zero selects the
	// package default.
	Concurrency int

	// FetchRate limits log fetches per second. Zero selects the
	// package default.
	FetchRate int

	// Fetcher overrides the log source. Nil selects the
	// clientset-backed fetcher.
	Fetcher LogFetcher
}

// Collect lists pods per namespace and fetches each container's log
// tail. A namespace whose pod list fails contributes a single failed
// entry under the namespace name and is otherwise skipped; individual
// log fetch failures are recorded inline under the container key.
func (c *Collector) Collect(ctx context.Context) (bundle.SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Clientset == nil {
		return nil, diagerrors.New(diagerrors.ErrCodeSourceUnavailable,
			"kubernetes client unavailable")
	}

	namespaces, err := c.resolveNamespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve namespaces: %w", err)
	}

	res := make(bundle.SourceResult)
	var targets []target
	for _, ns := range namespaces {
		pods, err := c.Clientset.CoreV1().Pods(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			res[ns] = bundle.Failedf("failed to list pods in namespace %s: %v", ns, err)
			continue
		}
		for _, pod := range pods.Items {
			for _, container := range append(pod.Spec.InitContainers, pod.Spec.Containers...) {
				targets = append(targets, target{
					namespace: ns,
					pod:       pod.Name,
					container: container.Name,
				})
			}
		}
	}

	slog.Info("fetching pod logs",
		"namespaces", len(namespaces),
		"containers", len(targets))

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = defaults.PodLogConcurrency
	}
	fetchRate := c.FetchRate
	if fetchRate <= 0 {
		fetchRate = defaults.PodLogFetchRate
	}
	limiter := rate.NewLimiter(rate.Limit(fetchRate), fetchRate)

	var mu sync.Mutex
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(concurrency)

	for _, tgt := range targets {
		grp.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			result := c.fetchLogs(gctx, tgt)
			mu.Lock()
			res[tgt.key()] = result
			mu.Unlock()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

type target struct {
	namespace string
	pod       string
	container string
}

// key mirrors the on-disk log file naming, <ns>/<pod>_<container>.
func (t target) key() string {
	return fmt.Sprintf("%s/%s_%s", t.namespace, t.pod, t.container)
}

// resolveNamespaces returns the configured namespace filter, or every
// namespace in the cluster when no filter is set.
func (c *Collector) resolveNamespaces(ctx context.Context) ([]string, error) {
	if len(c.Namespaces) > 0 {
		return c.Namespaces, nil
	}

	list, err := c.Clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}

func (c *Collector) fetchLogs(ctx context.Context, tgt target) bundle.Result {
	maxLines := c.MaxLogLines
	if maxLines <= 0 {
		maxLines = defaults.MaxPodLogLines
	}

	fetcher := c.Fetcher
	if fetcher == nil {
		fetcher = &clientsetFetcher{clientset: c.Clientset}
	}

	out, err := fetcher.FetchLogs(ctx, tgt.namespace, tgt.pod, tgt.container, maxLines)
	if err != nil {
		return bundle.Failedf("failed to fetch logs for %s: %v", tgt.key(), err)
	}
	return bundle.Ok(out)
}
