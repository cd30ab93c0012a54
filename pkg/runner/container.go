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

package runner

import (
	"os"
	"sync"
)

// Well-known containment indicators: runtime marker files, the
// serviceaccount token mount, and the "container" environment variable
// set by most OCI runtimes.
var containerMarkers = []string{
	"/.dockerenv",
	"/run/.containerenv",
	"/var/run/secrets/kubernetes.io/serviceaccount/token",
}

var (
	containerOnce sync.Once
	isContainer   bool
)

// InContainer reports whether the current process appears to run inside
// a container. The result is computed once; containment does not change
// over a process lifetime.
func InContainer() bool {
	containerOnce.Do(func() {
		isContainer = detectContainer()
	})
	return isContainer
}

func detectContainer() bool {
	if os.Getenv("container") != "" {
		return true
	}
	for _, marker := range containerMarkers {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}
	return false
}
