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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/edgebundle/clusterdiag/pkg/bundler"
	"github.com/edgebundle/clusterdiag/pkg/defaults"
)

func sweepCmd() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Delete archives older than the retention window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "archive-dir",
				Usage:   "Directory holding bundle archives",
				Sources: cli.EnvVars("CLUSTERDIAG_ARCHIVE_DIR"),
				Value:   "diagnostics/archives",
			},
			&cli.IntFlag{
				Name:    "retention-days",
				Usage:   "Archive retention window in days",
				Sources: cli.EnvVars("CLUSTERDIAG_RETENTION_DAYS"),
				Value:   defaults.RetentionDays,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			removed, err := bundler.Sweep(cmd.String("archive-dir"), cmd.Int("retention-days"))
			if err != nil {
				return err
			}
			fmt.Printf("removed %d expired archive(s)\n", removed)
			return nil
		},
	}
}
