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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/edgebundle/clusterdiag/pkg/defaults"
)

// Interface runs one external command and reports a uniform outcome.
// Implementations never return an error: every failure path (non-zero
// exit, spawn error, timeout) collapses to ok=false with a message.
type Interface interface {
	Run(ctx context.Context, command string, useShell bool) (ok bool, output string)
}

// Runner executes external commands with a bounded timeout. When the
// process itself runs inside a container, commands are transparently
// re-targeted to the host's namespaces via nsenter; callers never see
// the rewrite.
type Runner struct {
	timeout     time.Duration
	inContainer func() bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout overrides the default per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithContainerCheck overrides container detection. Used by tests and by
// callers that already know their execution context.
func WithContainerCheck(check func() bool) Option {
	return func(r *Runner) {
		r.inContainer = check
	}
}

// New creates a Runner with the default timeout and container detection.
func New(opts ...Option) *Runner {
	r := &Runner{
		timeout:     defaults.CommandTimeout,
		inContainer: InContainer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the command and returns (ok, output). On success output
// is the command's stdout; on failure it is a human-readable cause. The
// call returns within the configured timeout plus teardown slack.
func (r *Runner) Run(ctx context.Context, command string, useShell bool) (bool, string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return false, "empty command"
	}

	argv := buildArgv(command, useShell, r.inContainer())
	if len(argv) == 0 {
		return false, fmt.Sprintf("unparsable command: %q", command)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return true, stdout.String()
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		slog.Warn("command timed out", "command", command, "timeout", r.timeout)
		return false, fmt.Sprintf("command timed out after %s", r.timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, fmt.Sprintf("command failed with code %d: %s",
			exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
	}

	return false, fmt.Sprintf("error executing command: %v", err)
}

// buildArgv translates a command string into the argument vector to
// execute, applying shell wrapping and host-namespace entry. The nsenter
// prefix targets PID 1's mount, UTS, IPC, network, and PID namespaces.
func buildArgv(command string, useShell, hostNamespaces bool) []string {
	var argv []string
	if useShell {
		argv = []string{"sh", "-c", command}
	} else {
		argv = strings.Fields(command)
	}

	if hostNamespaces && len(argv) > 0 {
		argv = append([]string{"nsenter", "-t", "1", "-m", "-u", "-i", "-n", "-p", "--"}, argv...)
	}
	return argv
}
