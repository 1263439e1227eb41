// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package run discovers test modules and runs the selected ones.
package run

import (
	"context"
	"io"
	"os"

	"code.cloudfoundry.org/clock"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/coverage"
	"go.chromium.org/distcovery/internal/discovery"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/module"
	"go.chromium.org/distcovery/internal/naming"
	"go.chromium.org/distcovery/internal/testing"
	"go.chromium.org/distcovery/internal/uniquename"
)

// Options describes a run.
type Options struct {
	// Root is the test root, relative to Cwd or absolute.
	Root string
	// Cwd is the working directory. Root must be inside it.
	Cwd string
	// Convention tells test modules and packages apart from other files.
	Convention *naming.Convention
	// Selector lists aliases to run. Empty runs everything.
	Selector []string
	// Argv is passed to the unit-test program. Argv[0] is the program name.
	Argv []string
	// Verbosity of the unit-test program.
	Verbosity int
	// NameAttempts and NameDigits configure synthetic module names.
	NameAttempts int
	NameDigits   int
}

// Deps holds what a run uses from its environment.
type Deps struct {
	// FS is used for discovery. discovery.OS is used if nil.
	FS discovery.FileSystem
	// Modules resolves imports. Test modules must be importable through it.
	Modules *module.Registry
	// Coverage brackets each program run. Coverage is not collected if nil.
	Coverage coverage.Coverage
	// Out receives program output and the coverage report. os.Stderr is
	// used if nil.
	Out io.Writer
	// Clock is passed to the program.
	Clock clock.Clock
}

// Summary sums up the results of all program runs.
type Summary struct {
	// Modules is the number of modules the program ran.
	Modules int
	// Run is the number of tests run.
	Run int
	// Failures is the number of failed tests.
	Failures int
}

// OK reports whether every test passed.
func (s *Summary) OK() bool { return s.Failures == 0 }

// Run discovers the test tree, validates the selection and runs the unit-test
// program once per selected alias, each inside a coverage section.
func Run(ctx context.Context, opts *Options, deps *Deps) (*Summary, error) {
	fsys := deps.FS
	if fsys == nil {
		fsys = discovery.OS
	}
	cov := deps.Coverage
	if cov == nil {
		cov = coverage.Dummy{}
	}
	out := deps.Out
	if out == nil {
		out = os.Stderr
	}
	selector := opts.Selector
	if len(selector) == 0 {
		selector = ParseSelector("")
	}

	pkg, err := CollectTests(ctx, fsys, opts.Convention, opts.Root, opts.Cwd)
	if err != nil {
		return nil, err
	}
	sess, err := NewSession(ctx, pkg, deps.Modules, uniquename.New(opts.NameAttempts, opts.NameDigits))
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.Validate(selector); err != nil {
		return nil, err
	}
	var names []string
	for _, alias := range selector {
		name, _ := sess.Resolve(alias)
		names = append(names, name)
	}

	prog := &testing.Program{
		Modules:   deps.Modules,
		Out:       out,
		Verbosity: opts.Verbosity,
		Clock:     deps.Clock,
	}
	sum := &Summary{}
	for i, name := range names {
		logging.Infof(ctx, "Running %s", selector[i])
		res, err := runOne(ctx, cov, prog, name, opts.Argv)
		if err != nil {
			return nil, err
		}
		sum.Modules++
		sum.Run += res.Run
		sum.Failures += res.Failures
	}
	if err := cov.Report(ctx, out); err != nil {
		return nil, errors.Wrap(err, "failed to report coverage")
	}
	return sum, nil
}

// runOne runs the program for name inside a coverage section.
func runOne(ctx context.Context, cov coverage.Coverage, prog *testing.Program, name string, argv []string) (res *testing.Result, retErr error) {
	if err := cov.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start coverage")
	}
	defer func() {
		if err := cov.Stop(ctx); err != nil && retErr == nil {
			retErr = errors.Wrap(err, "failed to stop coverage")
		}
	}()
	return prog.Run(ctx, name, argv)
}
