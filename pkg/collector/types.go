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

package collector

import (
	"context"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
)

// Collector gathers one category of diagnostic data. Per-item failures
// are recorded inline in the SourceResult; the error return is reserved
// for wholesale failures where no per-item data could be produced.
type Collector interface {
	Collect(ctx context.Context) (bundle.SourceResult, error)
}
