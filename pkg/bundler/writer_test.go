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

package bundler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
)

func testSnapshot(start time.Time) *bundle.Snapshot {
	snap := bundle.NewSnapshot(start)
	snap.Set(bundle.CategoryNodeLogs, bundle.Collected(bundle.SourceResult{
		"system":       bundle.Ok("journal lines"),
		"system/state": bundle.Ok("active (running)"),
	}))
	snap.Set(bundle.CategoryPodLogs, bundle.Collected(bundle.SourceResult{
		"default/web_nginx":  bundle.Ok("log lines"),
		"default/web_broken": bundle.Failed("failed to fetch logs: container not found"),
	}))
	snap.Set(bundle.CategoryClusterConfig, bundle.Collected(bundle.SourceResult{
		"namespaces": bundle.Ok("default\nkube-system"),
	}))
	snap.Set(bundle.CategoryMetrics, bundle.CategoryFailed("metrics API unreachable"))
	snap.Set(bundle.CategoryVersions, bundle.Collected(bundle.SourceResult{
		"k3s": bundle.Ok("v1.30.3+k3s1"),
	}))
	return snap
}

func writeTestBundle(t *testing.T) (string, bundle.Request) {
	t.Helper()
	req := bundle.NewRequest(t.TempDir(), t.TempDir())
	start := time.Date(2026, 8, 24, 10, 15, 30, 0, time.UTC)
	snap := testSnapshot(start)
	report := bundle.BuildReport(snap, req, start.Add(42*time.Second))

	w := &Writer{}
	runDir, err := w.Write(snap, req, report)
	require.NoError(t, err)
	return runDir, req
}

func TestWriteLayout(t *testing.T) {
	runDir, req := writeTestBundle(t)

	assert.Equal(t, filepath.Join(req.OutputDir, "bundle_2026-08-24_10-15-30"), runDir)

	// Log categories get one file per item, .err for failed items.
	assert.FileExists(t, filepath.Join(runDir, "node-logs", "system.log"))
	assert.FileExists(t, filepath.Join(runDir, "node-logs", "system", "state.log"))
	assert.FileExists(t, filepath.Join(runDir, "pod-logs", "default", "web_nginx.log"))
	assert.FileExists(t, filepath.Join(runDir, "pod-logs", "default", "web_broken.err"))

	// Structured categories are one document each.
	assert.FileExists(t, filepath.Join(runDir, "cluster-config.yaml"))
	assert.FileExists(t, filepath.Join(runDir, "versions.yaml"))

	// Wholesale category failure leaves an .err marker.
	assert.FileExists(t, filepath.Join(runDir, "node-metrics.err"))
	assert.NoFileExists(t, filepath.Join(runDir, "node-metrics.yaml"))

	assert.FileExists(t, filepath.Join(runDir, "summary.yaml"))
}

func TestWriteContents(t *testing.T) {
	runDir, _ := writeTestBundle(t)

	data, err := os.ReadFile(filepath.Join(runDir, "node-logs", "system.log"))
	require.NoError(t, err)
	assert.Equal(t, "journal lines\n", string(data))

	data, err = os.ReadFile(filepath.Join(runDir, "pod-logs", "default", "web_broken.err"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "container not found")

	data, err = os.ReadFile(filepath.Join(runDir, "node-metrics.err"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "metrics API unreachable")
}

func TestWriteStructuredCategoryRoundTrips(t *testing.T) {
	runDir, _ := writeTestBundle(t)

	data, err := os.ReadFile(filepath.Join(runDir, "cluster-config.yaml"))
	require.NoError(t, err)

	var items map[string]bundle.Result
	require.NoError(t, yaml.Unmarshal(data, &items))
	assert.Equal(t, "default\nkube-system", items["namespaces"].Output)
}

func TestWriteSummaryReflectsSnapshot(t *testing.T) {
	runDir, _ := writeTestBundle(t)

	data, err := os.ReadFile(filepath.Join(runDir, "summary.yaml"))
	require.NoError(t, err)

	var report bundle.Report
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, bundle.StatusCategoryFailed, report.Categories[bundle.CategoryMetrics].Status)
	assert.Equal(t, bundle.StatusCollected, report.Categories[bundle.CategoryNodeLogs].Status)
	assert.NotEmpty(t, report.Errors)
}

func TestRunDirNameUnique(t *testing.T) {
	a := RunDirName(time.Date(2026, 8, 24, 10, 15, 30, 0, time.UTC))
	b := RunDirName(time.Date(2026, 8, 24, 10, 15, 31, 0, time.UTC))
	assert.NotEqual(t, a, b)
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"system", "system"},
		{"default/web_nginx", "default/web_nginx"},
		{"../escape", "escape"},
		{"a/../../b", "a/b"},
		{"..", "_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeKey(tt.key), tt.key)
	}
}
