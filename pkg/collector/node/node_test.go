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

package node

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
)

// fakeRunner maps command strings to canned results.
type fakeRunner struct {
	results map[string]struct {
		ok  bool
		out string
	}
}

func (f *fakeRunner) Run(_ context.Context, command string, _ bool) (bool, string) {
	if r, ok := f.results[command]; ok {
		return r.ok, r.out
	}
	return false, "unknown command"
}

type fakeStater struct {
	states map[string]string
	err    error
}

func (f *fakeStater) States(_ context.Context, _ []string) (map[string]string, error) {
	return f.states, f.err
}

func TestCollectAllServicesSucceed(t *testing.T) {
	c := &Collector{
		Runner: &fakeRunner{results: map[string]struct {
			ok  bool
			out string
		}{
			"journalctl -u hauler --no-pager": {true, "hauler lines"},
			"journalctl -n 100 --no-pager":    {true, "system lines"},
		}},
		Services: []Service{
			{Name: "system", Command: "journalctl -n 100 --no-pager"},
			{Name: "hauler", Unit: "hauler.service", Command: "journalctl -u hauler --no-pager"},
		},
		States: &fakeStater{states: map[string]string{"hauler.service": "active (running)"}},
	}

	res, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, bundle.Ok("system lines"), res["system"])
	assert.Equal(t, bundle.Ok("hauler lines"), res["hauler"])
	assert.Equal(t, bundle.Ok("active (running)"), res["hauler/state"])
}

func TestCollectOneServiceFailsOthersContinue(t *testing.T) {
	c := &Collector{
		Runner: &fakeRunner{results: map[string]struct {
			ok  bool
			out string
		}{
			"journalctl -u good --no-pager": {true, "good lines"},
			"journalctl -u bad --no-pager":  {false, "command failed with code 1: no such unit"},
		}},
		Services: []Service{
			{Name: "good", Command: "journalctl -u good --no-pager"},
			{Name: "bad", Command: "journalctl -u bad --no-pager"},
		},
		States: &fakeStater{err: errors.New("no dbus")},
	}

	res, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.True(t, res["good"].OK())
	assert.False(t, res["bad"].OK())
	assert.Contains(t, res["bad"].Error, "failed to collect logs")
	assert.Equal(t, 1, res.Failures())
}

func TestCollectStatesUnavailableIsNotFatal(t *testing.T) {
	c := &Collector{
		Runner: &fakeRunner{results: map[string]struct {
			ok  bool
			out string
		}{
			"journalctl -u svc --no-pager": {true, "lines"},
		}},
		Services: []Service{{Name: "svc", Unit: "svc.service", Command: "journalctl -u svc --no-pager"}},
		States:   &fakeStater{err: errors.New("dbus: connection refused")},
	}

	res, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.True(t, res["svc"].OK())
	assert.NotContains(t, res, "svc/state")
}

func TestCollectCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Collector{Runner: &fakeRunner{}}
	res, err := c.Collect(ctx)
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestDefaultServicesHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, svc := range DefaultServices() {
		assert.False(t, seen[svc.Name], "duplicate service %s", svc.Name)
		seen[svc.Name] = true
		assert.NotEmpty(t, svc.Command)
	}
}

func TestFormatUnitState(t *testing.T) {
	assert.Equal(t, "active (running)", formatUnitState("active", "running"))
	assert.Equal(t, "inactive", formatUnitState("inactive", ""))
}
