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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sweep deletes archives older than the retention window. Age is
// measured from file modification time. Individual deletion failures
// are logged and do not stop the sweep; the error return is reserved
// for an unreadable archive directory. A zero or negative window
// disables the sweep.
func Sweep(archiveDir string, retentionDays int) (int, error) {
	return sweepAt(archiveDir, retentionDays, time.Now())
}

func sweepAt(archiveDir string, retentionDays int, now time.Time) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read archive directory: %w", err)
	}

	cutoff := now.AddDate(0, 0, -retentionDays)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isArchiveName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			slog.Warn("failed to stat archive", "name", entry.Name(), "error", err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(archiveDir, entry.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to delete expired archive", "path", path, "error", err)
			continue
		}
		slog.Info("deleted expired archive",
			"path", path,
			"age_days", int(now.Sub(info.ModTime()).Hours()/24))
		removed++
	}
	return removed, nil
}

// isArchiveName restricts the sweep to files this tool created.
func isArchiveName(name string) bool {
	return strings.HasPrefix(name, RunPrefix+"_") && strings.HasSuffix(name, ArchiveExt)
}
