// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package coverage collects code coverage of the running test bundle around
// each unit-test program run.
package coverage

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime/coverage"
	"strings"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/shutil"
)

// Coverage brackets test runs and reports what they covered.
type Coverage interface {
	// Start begins a measured section.
	Start(ctx context.Context) error
	// Stop ends the section started by Start and saves its counters.
	Stop(ctx context.Context) error
	// Report writes a report of all saved sections to w.
	Report(ctx context.Context, w io.Writer) error
}

// Options configures New.
type Options struct {
	// Enabled turns coverage collection on.
	Enabled bool
	// Dir receives coverage data. A temporary directory is used if empty.
	Dir string
	// Packages restricts the report to these import path patterns.
	Packages []string
}

// counters is the part of runtime/coverage used by Coverage.
type counters interface {
	WriteMetaDir(dir string) error
	WriteCountersDir(dir string) error
	ClearCounters() error
}

type runtimeCounters struct{}

func (runtimeCounters) WriteMetaDir(dir string) error     { return coverage.WriteMetaDir(dir) }
func (runtimeCounters) WriteCountersDir(dir string) error { return coverage.WriteCountersDir(dir) }
func (runtimeCounters) ClearCounters() error              { return coverage.ClearCounters() }

type runFunc func(ctx context.Context, cmd *exec.Cmd) ([]byte, error)

func combinedOutput(ctx context.Context, cmd *exec.Cmd) ([]byte, error) {
	return cmd.CombinedOutput()
}

// New returns a Coverage for opts. If coverage is disabled, or the bundle
// was built without -cover, a Coverage doing nothing is returned.
func New(ctx context.Context, opts Options) (Coverage, error) {
	return newCoverage(ctx, opts, runtimeCounters{}, combinedOutput)
}

func newCoverage(ctx context.Context, opts Options, cs counters, run runFunc) (Coverage, error) {
	if !opts.Enabled {
		return Dummy{}, nil
	}
	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = os.MkdirTemp("", "distcovery_cover_"); err != nil {
			return nil, errors.Wrap(err, "failed to create coverage directory")
		}
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create coverage directory")
	}
	if err := cs.WriteMetaDir(dir); err != nil {
		logging.Warningf(ctx, "Coverage disabled: %v", err)
		return Dummy{}, nil
	}
	logging.Debugf(ctx, "Writing coverage data to %s", dir)
	return &collector{dir: dir, pkgs: opts.Packages, cs: cs, run: run}, nil
}

// Dummy is a Coverage that does nothing.
type Dummy struct{}

// Start does nothing.
func (Dummy) Start(ctx context.Context) error { return nil }

// Stop does nothing.
func (Dummy) Stop(ctx context.Context) error { return nil }

// Report does nothing.
func (Dummy) Report(ctx context.Context, w io.Writer) error { return nil }

// collector writes coverage counters of the running binary.
type collector struct {
	dir  string
	pkgs []string
	cs   counters
	run  runFunc
}

func (c *collector) Start(ctx context.Context) error {
	// Clearing only works in atomic counter mode; otherwise sections
	// also count what ran before them.
	if err := c.cs.ClearCounters(); err != nil {
		logging.Debugf(ctx, "Not clearing coverage counters: %v", err)
	}
	return nil
}

func (c *collector) Stop(ctx context.Context) error {
	if err := c.cs.WriteCountersDir(c.dir); err != nil {
		return errors.Wrap(err, "failed to write coverage counters")
	}
	return nil
}

func (c *collector) Report(ctx context.Context, w io.Writer) error {
	args := []string{"tool", "covdata", "percent", "-i=" + c.dir}
	if len(c.pkgs) > 0 {
		args = append(args, "-pkg="+strings.Join(c.pkgs, ","))
	}
	cmd := exec.CommandContext(ctx, "go", args...)
	logging.Info(ctx, "Coverage report:")
	logging.Debugf(ctx, "Running %s", shutil.CommandLine(cmd))
	out, err := c.run(ctx, cmd)
	if err != nil {
		return errors.Wrapf(err, "%s failed: %s", shutil.CommandLine(cmd), strings.TrimSpace(string(out)))
	}
	_, err = w.Write(out)
	return err
}
