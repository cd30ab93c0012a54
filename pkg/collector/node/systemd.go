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

	"github.com/coreos/go-systemd/v22/dbus"
)

// UnitStater resolves the current state of systemd units.
type UnitStater interface {
	States(ctx context.Context, units []string) (map[string]string, error)
}

// dbusStater queries systemd over the system bus.
type dbusStater struct{}

// NewDbusStater returns a UnitStater backed by the systemd system bus.
func NewDbusStater() UnitStater {
	return dbusStater{}
}

func (dbusStater) States(ctx context.Context, units []string) (map[string]string, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	statuses, err := conn.ListUnitsByNamesContext(ctx, units)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	states := make(map[string]string, len(statuses))
	for _, st := range statuses {
		states[st.Name] = formatUnitState(st.ActiveState, st.SubState)
	}
	return states, nil
}
