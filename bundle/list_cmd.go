// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package bundle

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/subcommands"

	"go.chromium.org/distcovery/internal/command"
	"go.chromium.org/distcovery/internal/config"
	"go.chromium.org/distcovery/internal/discovery"
	"go.chromium.org/distcovery/internal/run"
)

const (
	formatPlain = "plain"
	formatTree  = "tree"
)

// listCmd implements subcommands.Command to list discovered tests.
type listCmd struct {
	cfg    *config.Config // shared bundle configuration
	format string         // output format
	stdout io.Writer      // where to write the listing
	stderr io.Writer      // where to write errors
}

var _ = subcommands.Command(&listCmd{})

func newListCmd(cfg *config.Config, stdout, stderr io.Writer) *listCmd {
	return &listCmd{cfg: cfg, stdout: stdout, stderr: stderr}
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list test modules and packages" }
func (*listCmd) Usage() string {
	return `Usage: list [flag]...

Description:
    List the test modules and packages found below the test root. The names
    printed are the aliases accepted by "run -module".

Flag:
`
}

func (lc *listCmd) SetFlags(f *flag.FlagSet) {
	ff := command.NewEnumFlag([]string{formatPlain, formatTree}, func(v string) { lc.format = v }, formatPlain)
	f.Var(ff, "format", fmt.Sprintf("output format (%s; default %q)", ff.QuotedValues(), ff.Default()))
	lc.cfg.SetFlags(f)
}

func (lc *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(f.Args()) != 0 {
		fmt.Fprint(lc.stderr, "Unexpected arguments.\n\n"+lc.Usage())
		return subcommands.ExitUsageError
	}
	s, status := validate(lc.cfg, lc.stderr)
	if s == nil {
		return status
	}
	pkg, err := run.CollectTests(ctx, discovery.OS, s.conv, lc.cfg.TestRoot, s.cwd)
	if err != nil {
		return subcommands.ExitStatus(command.WriteError(lc.stderr, err))
	}

	if lc.format == formatTree {
		err = run.WriteTree(lc.stdout, pkg, filepath.Base(lc.cfg.TestRoot))
	} else {
		err = run.WriteList(lc.stdout, pkg)
	}
	if err != nil {
		return subcommands.ExitStatus(command.WriteError(lc.stderr, err))
	}
	return subcommands.ExitSuccess
}
