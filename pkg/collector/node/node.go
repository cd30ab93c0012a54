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
	"fmt"
	"log/slog"

	"github.com/edgebundle/clusterdiag/pkg/bundle"
	"github.com/edgebundle/clusterdiag/pkg/runner"
)

// Service describes one host service to collect logs from. Unit is the
// systemd unit name used for the optional state lookup; empty for
// aggregate queries like the full system journal.
type Service struct {
	Name    string
	Unit    string
	Command string
}

// DefaultServices lists the host services collected by default. The
// command strings are configuration data, not logic.
func DefaultServices() []Service {
	return []Service{
		{Name: "system", Command: "journalctl -n 1000 --no-pager"},
		{Name: "combustion", Unit: "combustion.service", Command: "journalctl -u combustion --no-pager"},
		{Name: "hauler", Unit: "hauler.service", Command: "journalctl -u hauler --no-pager"},
		{Name: "nmc", Unit: "nm-configurator.service", Command: "journalctl -u nm-configurator --no-pager"},
	}
}

// Collector gathers host service logs through the command runner and,
// where available, the systemd unit state for each service.
type Collector struct {
	Runner   runner.Interface
	Services []Service

	// States resolves systemd unit states. Nil enables the default
	// dbus-backed implementation; a failing stater is not an error,
	// unit states are supplementary.
	States UnitStater
}

// Collect runs every configured service's log command. A failing
// service becomes an inline failure under its key; iteration continues
// over the remaining services.
func (c *Collector) Collect(ctx context.Context) (bundle.SourceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	services := c.Services
	if len(services) == 0 {
		services = DefaultServices()
	}

	res := make(bundle.SourceResult, len(services)*2)

	states := c.unitStates(ctx, services)

	for i, svc := range services {
		ok, out := c.Runner.Run(ctx, svc.Command, true)
		if ok {
			res[svc.Name] = bundle.Ok(out)
		} else {
			res[svc.Name] = bundle.Failedf("failed to collect logs: %s", out)
		}

		if state, found := states[svc.Unit]; found {
			res[svc.Name+"/state"] = bundle.Ok(state)
		}

		slog.Info("node log collection progress",
			"collected", i+1, "total", len(services), "service", svc.Name)
	}

	return res, nil
}

// unitStates fetches systemd states for services that name a unit.
// Best-effort: an unreachable systemd yields no state entries.
func (c *Collector) unitStates(ctx context.Context, services []Service) map[string]string {
	var units []string
	for _, svc := range services {
		if svc.Unit != "" {
			units = append(units, svc.Unit)
		}
	}
	if len(units) == 0 {
		return nil
	}

	stater := c.States
	if stater == nil {
		stater = dbusStater{}
	}

	states, err := stater.States(ctx, units)
	if err != nil {
		slog.Debug("systemd unit states unavailable", "error", err.Error())
		return nil
	}
	return states
}

// formatUnitState renders an active/sub state pair the way systemctl
// status does, e.g. "active (running)".
func formatUnitState(active, sub string) string {
	if sub == "" {
		return active
	}
	return fmt.Sprintf("%s (%s)", active, sub)
}
