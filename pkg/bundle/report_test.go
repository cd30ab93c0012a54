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

package bundle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	req := NewRequest("/tmp/out", "/tmp/archives")
	req.Skip = map[Category]bool{CategoryMetrics: true}

	snap := NewSnapshot(start)
	snap.Set(CategoryNodeLogs, Collected(SourceResult{
		"system":     Ok("lines"),
		"combustion": Failed("unit not found"),
	}))
	snap.Set(CategoryClusterConfig, Collected(SourceResult{
		"namespaces": Ok("default\nkube-system"),
	}))
	snap.Set(CategoryPodLogs, Collected(SourceResult{
		"default/web/nginx": Ok("GET /"),
	}))
	snap.Set(CategoryVersions, CategoryFailed("runner unavailable"))

	rep := BuildReport(snap, req, end)

	assert.Equal(t, snap.RunID, rep.RunID)
	assert.InDelta(t, 90.0, rep.DurationSeconds, 0.001)
	assert.Equal(t, req, rep.Request)

	// Every category is summarized, including the skipped one.
	require.Len(t, rep.Categories, 5)
	assert.Equal(t, StatusSkipped, rep.Categories[CategoryMetrics].Status)
	assert.Equal(t, StatusCategoryFailed, rep.Categories[CategoryVersions].Status)

	nodeLogs := rep.Categories[CategoryNodeLogs]
	assert.Equal(t, StatusCollected, nodeLogs.Status)
	assert.Equal(t, 2, nodeLogs.Items)
	assert.Equal(t, 1, nodeLogs.Failures)

	assert.Equal(t, []string{
		"node-logs: combustion: unit not found",
		"versions: runner unavailable",
	}, rep.Errors)
}

func TestBuildReportCountsDerivableFromSnapshot(t *testing.T) {
	snap := NewSnapshot(time.Now())
	items := SourceResult{"a": Ok("1"), "b": Failed("x"), "c": Ok("2")}
	snap.Set(CategoryPodLogs, Collected(items))

	rep := BuildReport(snap, NewRequest("o", "a"), time.Now())

	assert.Equal(t, len(items), rep.Categories[CategoryPodLogs].Items)
	assert.Equal(t, items.Failures(), rep.Categories[CategoryPodLogs].Failures)
}

func TestRequestEnabled(t *testing.T) {
	tests := []struct {
		name string
		skip map[Category]bool
		want []Category
	}{
		{
			name: "all enabled",
			want: Categories(),
		},
		{
			name: "metrics and versions skipped",
			skip: map[Category]bool{CategoryMetrics: true, CategoryVersions: true},
			want: []Category{CategoryNodeLogs, CategoryClusterConfig, CategoryPodLogs},
		},
		{
			name: "all skipped",
			skip: map[Category]bool{
				CategoryNodeLogs:      true,
				CategoryClusterConfig: true,
				CategoryPodLogs:       true,
				CategoryMetrics:       true,
				CategoryVersions:      true,
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest("o", "a")
			req.Skip = tt.skip
			assert.Equal(t, tt.want, req.Enabled())
		})
	}
}

func TestRequestValidate(t *testing.T) {
	req := NewRequest("/tmp/out", "/tmp/archives")
	assert.NoError(t, req.Validate())

	bad := req
	bad.OutputDir = ""
	assert.Error(t, bad.Validate())

	bad = req
	bad.MaxLogLines = 0
	assert.Error(t, bad.Validate())

	bad = req
	bad.RetentionDays = -1
	assert.Error(t, bad.Validate())
}

func TestSnapshotRunIDsUnique(t *testing.T) {
	a := NewSnapshot(time.Now())
	b := NewSnapshot(time.Now())
	assert.NotEqual(t, a.RunID, b.RunID)
}
