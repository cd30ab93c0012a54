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

package oci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    Reference
		wantErr bool
	}{
		{
			name:   "full reference",
			target: "oci://ghcr.io/acme/diagnostics:v1.2.3",
			want:   Reference{Registry: "ghcr.io", Repository: "acme/diagnostics", Tag: "v1.2.3"},
		},
		{
			name:   "no tag",
			target: "oci://ghcr.io/acme/diagnostics",
			want:   Reference{Registry: "ghcr.io", Repository: "acme/diagnostics"},
		},
		{
			name:   "registry with port",
			target: "oci://localhost:5000/diag:latest",
			want:   Reference{Registry: "localhost:5000", Repository: "diag", Tag: "latest"},
		},
		{
			name:    "not an oci uri",
			target:  "/var/lib/bundles",
			wantErr: true,
		},
		{
			name:    "invalid reference",
			target:  "oci://UPPER CASE",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestIsOCITarget(t *testing.T) {
	assert.True(t, IsOCITarget("oci://ghcr.io/a/b"))
	assert.False(t, IsOCITarget("/tmp/archives"))
}

func TestImageReference(t *testing.T) {
	r := &Reference{Registry: "ghcr.io", Repository: "acme/diag"}
	assert.Equal(t, "ghcr.io/acme/diag", r.ImageReference())
	assert.Equal(t, "ghcr.io/acme/diag:v1", r.WithTag("v1").ImageReference())
}

func TestPushRequiresTag(t *testing.T) {
	_, err := Push(t.Context(), PushOptions{
		ArchivePath: "/tmp/bundle.tar.gz",
		Reference:   &Reference{Registry: "ghcr.io", Repository: "acme/diag"},
	})
	assert.Error(t, err)
}
