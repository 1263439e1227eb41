// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package bundle

import (
	"context"
	"flag"
	"io"

	"code.cloudfoundry.org/clock"
	"github.com/google/subcommands"

	"go.chromium.org/distcovery/internal/command"
	"go.chromium.org/distcovery/internal/config"
	"go.chromium.org/distcovery/internal/coverage"
	"go.chromium.org/distcovery/internal/discovery"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/module"
	"go.chromium.org/distcovery/internal/run"
	"go.chromium.org/distcovery/internal/testing"
)

// runCmd implements subcommands.Command to run tests.
type runCmd struct {
	cfg     *config.Config    // shared bundle configuration
	reg     *testing.Registry // registered test modules
	modules []string          // requested aliases
	stderr  io.Writer         // receives unit-test output and errors
	clock   clock.Clock       // measures test durations
}

var _ = subcommands.Command(&runCmd{})

func newRunCmd(cfg *config.Config, reg *testing.Registry, stderr io.Writer) *runCmd {
	return &runCmd{cfg: cfg, reg: reg, stderr: stderr, clock: clock.NewClock()}
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run tests" }
func (*runCmd) Usage() string {
	return `Usage: run [flag]... [pattern]...

Description:
    Run test modules and packages found below the test root.

    Select what to run with -module, a comma-separated list of aliases as
    printed by "list". All tests run if it is omitted:

        $ bundle run -module=first,sub

    Patterns are globs matching test ids of the form
    "<module>.<case>.<test>" and restrict the tests run:

        $ bundle run -module=sub 'test_sub.*.TestParse*'

Flag:
`
}

func (rc *runCmd) SetFlags(f *flag.FlagSet) {
	f.Var(command.NewListFlag(",", func(v []string) { rc.modules = v }, nil), "module",
		"comma-separated aliases of test modules and packages to run (default all)")
	rc.cfg.SetFlags(f)
}

func (rc *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status := validate(rc.cfg, rc.stderr)
	if s == nil {
		return status
	}

	mods := module.NewRegistry()
	defer rc.reg.Install(mods)()

	cov, err := coverage.New(ctx, coverage.Options{
		Enabled:  rc.cfg.Coverage.Enabled,
		Dir:      rc.cfg.Coverage.Dir,
		Packages: rc.cfg.Coverage.Packages,
	})
	if err != nil {
		return subcommands.ExitStatus(command.WriteError(rc.stderr, err))
	}

	sum, err := run.Run(ctx, &run.Options{
		Root:         rc.cfg.TestRoot,
		Cwd:          s.cwd,
		Convention:   s.conv,
		Selector:     rc.modules,
		Argv:         append([]string{"distcovery"}, f.Args()...),
		Verbosity:    rc.cfg.Verbosity,
		NameAttempts: rc.cfg.NameAttempts,
		NameDigits:   rc.cfg.NameDigits,
	}, &run.Deps{
		FS:       discovery.OS,
		Modules:  mods,
		Coverage: cov,
		Out:      rc.stderr,
		Clock:    rc.clock,
	})
	if err != nil {
		return subcommands.ExitStatus(command.WriteError(rc.stderr, err))
	}
	logging.Debugf(ctx, "Ran %d test(s) from %d module(s)", sum.Run, sum.Modules)
	if !sum.OK() {
		return subcommands.ExitStatus(command.StatusTestFailure)
	}
	return subcommands.ExitSuccess
}
