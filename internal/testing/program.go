// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"code.cloudfoundry.org/clock"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/module"
)

const (
	separator1 = "======================================================================"
	separator2 = "----------------------------------------------------------------------"
)

// Result summarizes a program run.
type Result struct {
	// Run is the number of tests run.
	Run int
	// Failures is the number of failed tests.
	Failures int
}

// OK reports whether every test passed.
func (r *Result) OK() bool { return r.Failures == 0 }

// Program runs the test cases of a module and reports them in the style of a
// text unit-test runner.
type Program struct {
	// Modules is used to import the module under test.
	Modules *module.Registry
	// Out receives the report. os.Stderr is used if nil.
	Out io.Writer
	// Verbosity is 0 (summary only), 1 (one character per test) or 2 (one
	// line per test).
	Verbosity int
	// Clock measures durations and fires timeouts. clock.NewClock() is used
	// if nil.
	Clock clock.Clock
}

type failure struct {
	id   string
	errs []*Error
	logs []string
}

// Run imports the module called name and runs every *Case bound directly in
// its namespace, in binding order. argv[0] is the program name; further
// arguments are test id patterns.
func (p *Program) Run(ctx context.Context, name string, argv []string) (*Result, error) {
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.NewClock()
	}
	var pats []string
	if len(argv) > 1 {
		pats = argv[1:]
	}
	matcher, err := NewMatcher(pats)
	if err != nil {
		return nil, err
	}

	mod, err := p.Modules.Import(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to import %s", name)
	}

	res := &Result{}
	var failures []failure
	start := clk.Now()
	for _, item := range mod.Namespace.Items() {
		c, ok := item.Value.(*Case)
		if !ok {
			continue
		}
		for _, t := range c.Tests {
			id := c.ID(t.Name)
			if !matcher.Match(id) {
				continue
			}
			if p.Verbosity > 1 {
				fmt.Fprintf(out, "%s ... ", id)
			}
			logging.Debugf(ctx, "Running %s", id)
			logs, errs := runTest(ctx, clk, c, t)
			res.Run++
			if len(errs) > 0 {
				res.Failures++
				failures = append(failures, failure{id, errs, logs})
			}
			switch {
			case p.Verbosity > 1 && len(errs) > 0:
				fmt.Fprintln(out, "FAIL")
			case p.Verbosity > 1:
				fmt.Fprintln(out, "ok")
			case p.Verbosity == 1 && len(errs) > 0:
				fmt.Fprint(out, "F")
			case p.Verbosity == 1:
				fmt.Fprint(out, ".")
			}
		}
	}
	elapsed := clk.Since(start)

	if p.Verbosity == 1 {
		fmt.Fprintln(out)
	}
	for _, f := range failures {
		fmt.Fprintf(out, "%s\nFAIL: %s\n%s\n", separator1, f.id, separator2)
		for _, l := range f.logs {
			fmt.Fprintln(out, l)
		}
		for _, e := range f.errs {
			fmt.Fprintln(out, e)
		}
		fmt.Fprintln(out)
	}
	writeSummary(out, res, elapsed)
	return res, nil
}

func writeSummary(w io.Writer, res *Result, elapsed time.Duration) {
	plural := "s"
	if res.Run == 1 {
		plural = ""
	}
	fmt.Fprintf(w, "%s\nRan %d test%s in %.3fs\n\n", separator2, res.Run, plural, elapsed.Seconds())
	if res.OK() {
		fmt.Fprintln(w, "OK")
	} else {
		fmt.Fprintf(w, "FAILED (failures=%d)\n", res.Failures)
	}
}

// runTest runs SetUp, the test body and TearDown of t under c's timeout.
// A fatal SetUp skips the body, TearDown always runs.
func runTest(ctx context.Context, clk clock.Clock, c *Case, t Test) (logs []string, errs []*Error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := &output{}
	s := newState(ctx, out, "")
	done := make(chan struct{})
	go func() {
		defer close(done)
		if c.SetUp != nil {
			runAndRecover(ctx, c.SetUp, s)
		}
		if !s.HasError() {
			runAndRecover(ctx, t.Func, s)
		}
		if c.TearDown != nil {
			runAndRecover(ctx, c.TearDown, s)
		}
	}()

	timer := clk.NewTimer(c.timeout())
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C():
		cancel()
		s.failWithLocation(fmt.Sprintf("Timed out after %v", c.timeout()), "timeout", 0)
	}
	logs, errs = out.snapshot()
	return logs, errs
}
