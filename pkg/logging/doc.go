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

// Package logging wraps log/slog with clusterdiag conventions: structured
// JSON output to stderr, module/version context on every record, and
// level selection via flag or the LOG_LEVEL environment variable.
//
// Typical use:
//
//	logging.SetDefaultStructuredLoggerWithLevel("clusterdiag", version, "info")
//	slog.Info("collection started", "categories", 5)
//
// Debug level additionally records source locations.
package logging
