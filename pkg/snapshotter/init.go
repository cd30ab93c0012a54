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

package snapshotter

import (
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/edgebundle/clusterdiag/pkg/defaults"
	"github.com/edgebundle/clusterdiag/pkg/errors"
)

// prepareOutput creates the output and archive directories and proves
// the output location is writable. This is the only fatal failure in a
// run; a collector can degrade, an unwritable bundle cannot.
func (s *Snapshotter) prepareOutput() error {
	for _, dir := range []string{s.Request.OutputDir, s.Request.ArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeFatal,
				"failed to create output directory "+dir, err)
		}
	}

	probe := filepath.Join(s.Request.OutputDir, ".write-test")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFatal,
			"output directory is not writable", err)
	}
	_ = os.Remove(probe)

	logDiskUsage(s.Request.OutputDir, s.Request.MinFreeBytes)
	return nil
}

// logDiskUsage reports free space on the output filesystem. Low space
// is logged, never fatal, since a partial bundle still has value.
func logDiskUsage(dir string, minFreeBytes uint64) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		slog.Warn("failed to stat output filesystem", "dir", dir, "error", err)
		return
	}

	free := st.Bavail * uint64(st.Bsize)
	total := st.Blocks * uint64(st.Bsize)
	if total == 0 {
		return
	}
	freePercent := float64(free) / float64(total) * 100

	slog.Info("output filesystem",
		"dir", dir,
		"free_bytes", free,
		"free_percent", int(freePercent))

	if minFreeBytes == 0 {
		minFreeBytes = defaults.MinFreeBytes
	}
	if free < minFreeBytes || freePercent < defaults.LowFreePercent {
		slog.Warn("output filesystem is low on space",
			"free_bytes", free,
			"min_free_bytes", minFreeBytes)
	}
}
