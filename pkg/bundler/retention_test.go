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
)

func archiveAged(t *testing.T, dir string, ageDays int, now time.Time) string {
	t.Helper()
	ts := now.AddDate(0, 0, -ageDays)
	name := RunPrefix + "_" + ts.Format(TimestampLayout) + ArchiveExt
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("archive"), 0o644))
	require.NoError(t, os.Chtimes(path, ts, ts))
	return path
}

func TestSweepDeletesOnlyExpired(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	paths := map[int]string{}
	for _, age := range []int{5, 29, 30, 31, 365} {
		paths[age] = archiveAged(t, dir, age, now)
	}

	removed, err := sweepAt(dir, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.FileExists(t, paths[5])
	assert.FileExists(t, paths[29])
	assert.FileExists(t, paths[30])
	assert.NoFileExists(t, paths[31])
	assert.NoFileExists(t, paths[365])
}

func TestSweepIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := now.AddDate(0, 0, -90)
	foreign := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("keep"), 0o644))
	require.NoError(t, os.Chtimes(foreign, old, old))

	removed, err := sweepAt(dir, 30, now)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.FileExists(t, foreign)
}

func TestSweepZeroRetentionDisabled(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	path := archiveAged(t, dir, 365, now)

	removed, err := sweepAt(dir, 0, now)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.FileExists(t, path)
}

func TestSweepMissingDirectory(t *testing.T) {
	removed, err := Sweep(filepath.Join(t.TempDir(), "absent"), 30)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestIsArchiveName(t *testing.T) {
	assert.True(t, isArchiveName("bundle_2026-08-24_10-15-30.tar.gz"))
	assert.False(t, isArchiveName("bundle_2026-08-24_10-15-30.tar"))
	assert.False(t, isArchiveName("other_2026-08-24_10-15-30.tar.gz"))
}
