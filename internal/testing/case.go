// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testing provides the test-case capability and the in-process
// unit-test program that runs it.
//
// Test modules describe their cases with Case values and register them with
// a Registry under their qualified module name. A Registry installed into a
// module.Registry makes the cases importable; Program imports a module and
// runs every *Case bound directly in its namespace.
package testing

import (
	"context"
	"regexp"
	"time"

	"go.chromium.org/distcovery/errors"
)

// DefaultTimeout is used for cases that do not set Timeout.
const DefaultTimeout = 2 * time.Minute

var (
	caseNameRegexp = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)
	testNameRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// TestFunc is the code associated with a test.
type TestFunc func(context.Context, *State)

// Test is a single test of a Case.
type Test struct {
	// Name identifies the test within its case, e.g. "TestAdd".
	Name string
	// Func performs the test.
	Func TestFunc
}

// Case groups tests sharing set-up and tear-down code. A *Case bound in a
// module namespace is what the unit-test program collects.
type Case struct {
	// Name is the exported-style name of the case, e.g. "ParserTest".
	Name string
	// Desc is a short one-line description of the case.
	Desc string
	// Contacts lists people to contact about failures.
	Contacts []string
	// Attr contains freeform attributes.
	Attr []string
	// Timeout bounds each test including SetUp and TearDown.
	// DefaultTimeout is used if it is zero.
	Timeout time.Duration
	// SetUp runs before every test. Errors reported by SetUp skip the
	// test body.
	SetUp TestFunc
	// TearDown runs after every test, even if the test failed.
	TearDown TestFunc
	// Tests lists the tests in execution order.
	Tests []Test

	module string // qualified name of the registering module
}

// Module returns the qualified name of the module that registered c.
func (c *Case) Module() string { return c.module }

// ID returns the id of the test called name, "<module>.<case>.<test>".
func (c *Case) ID(name string) string {
	if c.module == "" {
		return c.Name + "." + name
	}
	return c.module + "." + c.Name + "." + name
}

func (c *Case) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Case) validate() error {
	if !caseNameRegexp.MatchString(c.Name) {
		return errors.Errorf("invalid case name %q (want an exported identifier)", c.Name)
	}
	if c.Timeout < 0 {
		return errors.Errorf("case %s has negative timeout %v", c.Name, c.Timeout)
	}
	if len(c.Tests) == 0 {
		return errors.Errorf("case %s has no tests", c.Name)
	}
	seen := make(map[string]struct{})
	for _, t := range c.Tests {
		if !testNameRegexp.MatchString(t.Name) {
			return errors.Errorf("case %s has invalid test name %q", c.Name, t.Name)
		}
		if t.Func == nil {
			return errors.Errorf("test %s.%s has no function", c.Name, t.Name)
		}
		if _, ok := seen[t.Name]; ok {
			return errors.Errorf("case %s has duplicate test %s", c.Name, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}
