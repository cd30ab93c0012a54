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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/bundler"
	"github.com/edgebundle/clusterdiag/pkg/collector"
	"github.com/edgebundle/clusterdiag/pkg/defaults"
	"github.com/edgebundle/clusterdiag/pkg/k8s/client"
	"github.com/edgebundle/clusterdiag/pkg/oci"
	"github.com/edgebundle/clusterdiag/pkg/runner"
	"github.com/edgebundle/clusterdiag/pkg/serializer"
	"github.com/edgebundle/clusterdiag/pkg/snapshotter"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Collect a diagnostic bundle",
		Description: `Collect diagnostic data from the cluster and the local node:
  - host service logs (journalctl)
  - cluster configuration (namespaces, helm releases, provisioning logs, images)
  - per-container pod logs
  - node resource metrics
  - component versions

The run is best-effort: a source that fails is recorded in the summary
report and the rest of the bundle is still produced. The bundle is
written as a timestamped directory, compressed into a tar.gz archive,
and old archives beyond the retention window are deleted.

# Examples

One-shot collection with defaults:
  clusterdiag collect

Restrict pod logs and skip metrics:
  clusterdiag collect --namespace kube-system --skip-metrics

Run continuously, collecting once a day:
  clusterdiag collect --every 24h

Push the archive to a registry after collection:
  clusterdiag collect --push oci://ghcr.io/acme/diagnostics:latest`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Usage:   "Directory for bundle run directories",
				Sources: cli.EnvVars("CLUSTERDIAG_OUTPUT_DIR"),
				Value:   "diagnostics",
			},
			&cli.StringFlag{
				Name:    "archive-dir",
				Usage:   "Directory for compressed archives",
				Sources: cli.EnvVars("CLUSTERDIAG_ARCHIVE_DIR"),
				Value:   "diagnostics/archives",
			},
			&cli.Int64Flag{
				Name:    "max-log-lines",
				Usage:   "Trailing log lines fetched per container",
				Sources: cli.EnvVars("CLUSTERDIAG_MAX_LOG_LINES"),
				Value:   defaults.MaxPodLogLines,
			},
			&cli.StringSliceFlag{
				Name:    "namespace",
				Usage:   "Limit pod log collection to a namespace (can be repeated; default all)",
				Sources: cli.EnvVars("CLUSTERDIAG_NAMESPACES"),
			},
			&cli.BoolFlag{Name: "skip-node-logs", Usage: "Skip host service log collection"},
			&cli.BoolFlag{Name: "skip-cluster-config", Usage: "Skip cluster configuration collection"},
			&cli.BoolFlag{Name: "skip-pod-logs", Usage: "Skip pod log collection"},
			&cli.BoolFlag{Name: "skip-metrics", Usage: "Skip node metrics collection"},
			&cli.BoolFlag{Name: "skip-versions", Usage: "Skip component version probes"},
			&cli.DurationFlag{
				Name:    "command-timeout",
				Usage:   "Timeout per external command",
				Sources: cli.EnvVars("CLUSTERDIAG_COMMAND_TIMEOUT"),
				Value:   defaults.CommandTimeout,
			},
			&cli.IntFlag{
				Name:    "retention-days",
				Usage:   "Archive retention window in days (0 disables the sweep)",
				Sources: cli.EnvVars("CLUSTERDIAG_RETENTION_DAYS"),
				Value:   defaults.RetentionDays,
			},
			&cli.BoolFlag{
				Name:    "parallel",
				Usage:   "Run category collectors concurrently",
				Sources: cli.EnvVars("CLUSTERDIAG_PARALLEL"),
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   fmt.Sprintf("Output format for structured files and summary (%v)", serializer.SupportedFormats()),
				Sources: cli.EnvVars("CLUSTERDIAG_FORMAT"),
				Value:   string(serializer.FormatYAML),
			},
			&cli.StringFlag{
				Name:    "kubeconfig",
				Usage:   "Path to kubeconfig (default: in-cluster or ~/.kube/config)",
				Sources: cli.EnvVars("KUBECONFIG"),
			},
			&cli.DurationFlag{
				Name:  "every",
				Usage: "Repeat collection on this interval (0 runs once)",
			},
			&cli.StringFlag{
				Name:  "push",
				Usage: "Push the archive to an OCI registry (oci://registry/repo[:tag])",
			},
			&cli.BoolFlag{Name: "plain-http", Usage: "Use HTTP for the registry connection"},
			&cli.BoolFlag{Name: "insecure-tls", Usage: "Skip registry TLS certificate verification"},
		},
		Action: runCollect,
	}
}

// buildRequest translates parsed flags into a collection request.
func buildRequest(cmd *cli.Command) (bundle.Request, error) {
	req := bundle.NewRequest(cmd.String("output-dir"), cmd.String("archive-dir"))
	req.MaxLogLines = cmd.Int64("max-log-lines")
	req.Namespaces = cmd.StringSlice("namespace")
	req.CommandTimeout = cmd.Duration("command-timeout")
	req.RetentionDays = cmd.Int("retention-days")
	req.Parallel = cmd.Bool("parallel")
	req.Skip = map[bundle.Category]bool{
		bundle.CategoryNodeLogs:      cmd.Bool("skip-node-logs"),
		bundle.CategoryClusterConfig: cmd.Bool("skip-cluster-config"),
		bundle.CategoryPodLogs:       cmd.Bool("skip-pod-logs"),
		bundle.CategoryMetrics:       cmd.Bool("skip-metrics"),
		bundle.CategoryVersions:      cmd.Bool("skip-versions"),
	}

	if err := req.Validate(); err != nil {
		return bundle.Request{}, err
	}
	return req, nil
}

func runCollect(ctx context.Context, cmd *cli.Command) error {
	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return fmt.Errorf("unknown output format: %q", format)
	}

	var pushRef *oci.Reference
	if target := cmd.String("push"); target != "" {
		pushRef, err = oci.ParseReference(target)
		if err != nil {
			return err
		}
		if pushRef.Tag == "" {
			pushRef = pushRef.WithTag(version)
		}
	}

	factoryOpts := []collector.Option{
		collector.WithRequest(req),
		collector.WithRunner(runner.New(runner.WithTimeout(req.CommandTimeout))),
	}

	// An unreachable API server degrades the API-backed categories to
	// recorded failures; it does not stop the run.
	clientset, err := client.BuildKubeClient(cmd.String("kubeconfig"))
	if err != nil {
		slog.Warn("kubernetes client unavailable, API-backed categories will be degraded",
			"error", err)
		factoryOpts = append(factoryOpts, collector.WithClientsetError(err))
	} else {
		factoryOpts = append(factoryOpts, collector.WithClientset(clientset))
	}

	s := &snapshotter.Snapshotter{
		Request: req,
		Version: version,
		Factory: collector.NewDefaultFactory(factoryOpts...),
	}

	every := cmd.Duration("every")
	for {
		if err := collectOnce(ctx, s, req, format, pushRef, cmd); err != nil {
			return err
		}
		if every <= 0 {
			return nil
		}

		slog.Info("waiting for next collection", "every", every.String())
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(every):
		}
	}
}

// collectOnce drives one full run: collect, persist, summarize,
// archive, sweep, and optionally push.
func collectOnce(ctx context.Context, s *snapshotter.Snapshotter, req bundle.Request,
	format serializer.Format, pushRef *oci.Reference, cmd *cli.Command) error {

	runCtx, cancel := context.WithTimeout(ctx, defaults.CollectionTimeout)
	defer cancel()

	snap, err := s.Run(runCtx)
	if err != nil {
		return err
	}

	report := bundle.BuildReport(snap, req, time.Now())

	w := &bundler.Writer{Format: format}
	runDir, err := w.Write(snap, req, report)
	if err != nil {
		return err
	}

	archivePath, err := bundler.Archive(runDir, req.ArchiveDir, snap.StartTime)
	if err != nil {
		// The bundle directory exists; losing only the archive is not fatal.
		slog.Error("failed to create archive", "error", err)
	}

	if removed, err := bundler.Sweep(req.ArchiveDir, req.RetentionDays); err != nil {
		slog.Warn("retention sweep failed", "error", err)
	} else if removed > 0 {
		slog.Info("retention sweep complete", "removed", removed)
	}

	if pushRef != nil && archivePath != "" {
		if _, err := oci.Push(ctx, oci.PushOptions{
			ArchivePath: archivePath,
			Reference:   pushRef,
			Version:     version,
			PlainHTTP:   cmd.Bool("plain-http"),
			InsecureTLS: cmd.Bool("insecure-tls"),
		}); err != nil {
			slog.Error("failed to push archive", "error", err)
		}
	}

	// Print the summary to stdout for interactive runs.
	stdout := serializer.NewWriter(format, nil)
	return stdout.Serialize(ctx, report)
}
