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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/edgebundle/clusterdiag/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry targets
// (e.g., "oci://ghcr.io/org/repo:tag").
const URIScheme = "oci://"

// Reference is a parsed OCI registry destination.
type Reference struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "acme/diagnostics").
	Repository string
	// Tag is the image tag. Empty means the caller should apply a default.
	Tag string
}

// IsOCITarget reports whether the target string names an OCI registry.
func IsOCITarget(target string) bool {
	return strings.HasPrefix(target, URIScheme)
}

// ParseReference parses an oci:// URI into its registry components.
func ParseReference(target string) (*Reference, error) {
	if !IsOCITarget(target) {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidRequest,
			"not an OCI target: %s", target)
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	out := &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		out.Tag = tagged.Tag()
	}
	return out, nil
}

// ImageReference returns the docker-style reference string.
func (r *Reference) ImageReference() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the given tag.
func (r *Reference) WithTag(tag string) *Reference {
	return &Reference{Registry: r.Registry, Repository: r.Repository, Tag: tag}
}
