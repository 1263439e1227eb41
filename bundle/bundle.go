// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package bundle implements the command line of a test bundle.
//
// A test bundle is an executable linking test modules in. Its main function
// only needs to call Main:
//
//	func main() {
//		os.Exit(bundle.Main(os.Args[1:], os.Stdout, os.Stderr))
//	}
package bundle

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"golang.org/x/term"

	"go.chromium.org/distcovery/internal/command"
	"go.chromium.org/distcovery/internal/config"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/naming"
	"go.chromium.org/distcovery/internal/testing"
)

const signalChannelSize = 3 // capacity of channel used to intercept signals

// Version is the version of the bundle. It may be set at link time.
var Version = "<unknown>"

// Main runs the bundle with args (excluding the program name) and returns
// its exit status. Test modules registered to the global registry are used.
func Main(args []string, stdout, stderr io.Writer) int {
	installSignalHandler(stderr)
	return doMain(context.Background(), args, stdout, stderr, testing.GlobalRegistry())
}

// installSignalHandler restores the terminal state and exits when the
// process is interrupted, since deferred functions do not run then.
func installSignalHandler(w io.Writer) {
	var st *term.State
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		st, _ = term.GetState(fd)
	}

	sc := make(chan os.Signal, signalChannelSize)
	go func() {
		for sig := range sc {
			if st != nil {
				term.Restore(fd, st)
			}
			fmt.Fprintf(w, "\nCaught %v signal; exiting\n", sig)
			os.Exit(command.StatusInternal)
		}
	}()
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
}

// doMain implements Main for an explicit registry. It is separate so that
// its deferred functions run before the process exits.
func doMain(ctx context.Context, args []string, stdout, stderr io.Writer, reg *testing.Registry) int {
	fs := flag.NewFlagSet("distcovery", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", config.DefaultFile, "YAML configuration file")
	version := fs.Bool("version", false, "print version and exit")
	verbose := fs.Bool("verbose", false, "use verbose logging")
	logTime := fs.Bool("logtime", false, "include date/time headers in logs")
	if err := fs.Parse(args); err != nil {
		return command.StatusBadArgs
	}

	if *version {
		fmt.Fprintf(stdout, "distcovery version %s\n", Version)
		return command.StatusOK
	}

	level := logging.LevelInfo
	if *verbose {
		level = logging.LevelDebug
	}
	// Unit-test output and logs share one sink so they do not interleave.
	sink := logging.NewWriterSink(stderr)
	ctx = logging.AttachLogger(ctx, logging.NewSinkLogger(level, *logTime, sink))

	if errs := reg.Errors(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(stderr, "Bad test module: %v\n", err)
		}
		return command.StatusInternal
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := config.Load(*cfgPath, explicit)
	if err != nil {
		return command.WriteError(stderr, command.NewStatusErrorf(command.StatusBadArgs, "%v", err))
	}

	cdr := subcommands.NewCommander(fs, "distcovery")
	cdr.Output = stdout
	cdr.Error = stderr
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")
	cdr.Register(newListCmd(cfg, stdout, stderr), "")
	cdr.Register(newRunCmd(cfg, reg, sink), "")
	return int(cdr.Execute(ctx))
}

// setup holds what list and run derive from the configuration.
type setup struct {
	conv *naming.Convention
	cwd  string
}

// validate checks cfg and returns the naming convention and working
// directory, or an exit status on error.
func validate(cfg *config.Config, stderr io.Writer) (*setup, subcommands.ExitStatus) {
	conv, err := cfg.Validate()
	if err != nil {
		return nil, subcommands.ExitStatus(command.WriteError(stderr, command.NewStatusErrorf(command.StatusBadArgs, "Bad configuration: %v", err)))
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, subcommands.ExitStatus(command.WriteError(stderr, err))
	}
	return &setup{conv: conv, cwd: cwd}, subcommands.ExitSuccess
}
