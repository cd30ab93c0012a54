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

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/errors"
	"github.com/edgebundle/clusterdiag/pkg/serializer"
)

// TimestampLayout names run directories and archives. The layout keeps
// names shell-friendly and sortable.
const TimestampLayout = "2006-01-02_15-04-05"

// RunPrefix is the leading component of run directory and archive names.
const RunPrefix = "bundle"

// SummaryName is the base name of the summary document, without extension.
const SummaryName = "summary"

// logCategories get one file per item; everything else is serialized
// as a single structured document per category.
var logCategories = map[bundle.Category]bool{
	bundle.CategoryNodeLogs: true,
	bundle.CategoryPodLogs:  true,
}

// Writer persists a snapshot and its summary report as a run directory
// under the request's output directory.
type Writer struct {
	// Format selects the encoding for structured categories and the
	// summary document. Unknown values fall back to YAML.
	Format serializer.Format
}

// RunDirName returns the run directory base name for a run started at
// the given time. Two runs started at different timestamps never
// collide.
func RunDirName(start time.Time) string {
	return fmt.Sprintf("%s_%s", RunPrefix, start.Format(TimestampLayout))
}

// Write materializes the snapshot under a timestamped run directory
// and writes the summary report alongside the raw data. It returns the
// run directory path. Failure to write is fatal; by this point losing
// data is worse than any collector failure.
func (w *Writer) Write(snap *bundle.Snapshot, req bundle.Request, report *bundle.Report) (string, error) {
	format := w.Format
	if format.IsUnknown() {
		format = serializer.FormatYAML
	}

	runDir := filepath.Join(req.OutputDir, RunDirName(snap.StartTime))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeFatal, "failed to create run directory", err)
	}

	for _, cat := range bundle.Categories() {
		res, ok := snap.Categories[cat]
		if !ok {
			continue
		}
		if res.Failed {
			errFile := filepath.Join(runDir, string(cat)+".err")
			if err := os.WriteFile(errFile, []byte(res.Error+"\n"), 0o644); err != nil {
				return "", errors.Wrap(errors.ErrCodeFatal, "failed to write category error file", err)
			}
			continue
		}

		var err error
		if logCategories[cat] {
			err = writeLogCategory(runDir, cat, res.Items)
		} else {
			err = writeStructuredCategory(runDir, cat, res.Items, format)
		}
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeFatal,
				fmt.Sprintf("failed to persist category %s", cat), err)
		}
	}

	content, err := serializer.Marshal(format, report)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to serialize summary report", err)
	}
	summaryFile := filepath.Join(runDir, SummaryName+"."+format.Ext())
	if err := os.WriteFile(summaryFile, content, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeFatal, "failed to write summary report", err)
	}

	slog.Info("bundle written", "dir", runDir, "run_id", snap.RunID)
	return runDir, nil
}

// writeLogCategory writes one file per item. Successful items get a
// .log file with the raw output; failed items get a .err file with the
// cause, so every attempted item leaves a trace on disk.
func writeLogCategory(runDir string, cat bundle.Category, items bundle.SourceResult) error {
	catDir := filepath.Join(runDir, string(cat))
	for key, res := range items {
		path := filepath.Join(catDir, filepath.FromSlash(sanitizeKey(key)))
		if res.OK() {
			path += ".log"
		} else {
			path += ".err"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}

		content := res.Output
		if !res.OK() {
			content = res.Error
		}
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// writeStructuredCategory serializes the whole result map as a single
// document named after the category.
func writeStructuredCategory(runDir string, cat bundle.Category, items bundle.SourceResult, format serializer.Format) error {
	content, err := serializer.Marshal(format, items)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runDir, string(cat)+"."+format.Ext()), content, 0o644)
}

// sanitizeKey keeps item keys inside the run directory. Slashes are
// legitimate nesting; path traversal is not.
func sanitizeKey(key string) string {
	parts := strings.Split(key, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return "_"
	}
	return strings.Join(out, "/")
}
