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

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredErrorMessage(t *testing.T) {
	err := New(ErrCodeTimeout, "command timed out")
	assert.Equal(t, "[TIMEOUT] command timed out", err.Error())

	cause := stderrors.New("connection refused")
	wrapped := Wrap(ErrCodeSourceUnavailable, "metrics API unreachable", cause)
	assert.Equal(t, "[SOURCE_UNAVAILABLE] metrics API unreachable: connection refused", wrapped.Error())
}

func TestUnwrapChain(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeFatal, "cannot create output directory", cause)

	assert.ErrorIs(t, err, cause)

	var se *StructuredError
	assert.ErrorAs(t, fmt.Errorf("run failed: %w", err), &se)
	assert.Equal(t, ErrCodeFatal, se.Code)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"direct", New(ErrCodeNotFound, "no such pod"), ErrCodeNotFound},
		{"wrapped", fmt.Errorf("outer: %w", New(ErrCodeTimeout, "slow")), ErrCodeTimeout},
		{"plain error", stderrors.New("plain"), ErrCodeInternal},
		{"nil-safe formatting", Newf(ErrCodeInvalidRequest, "bad namespace %q", "x/y"), ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeFatal, "no output dir")))
	assert.False(t, IsFatal(New(ErrCodeTimeout, "slow")))
	assert.False(t, IsFatal(stderrors.New("plain")))
}
