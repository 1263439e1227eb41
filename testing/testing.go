// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testing is used by test modules to register their test cases.
//
// A test module file test_parser.go in the test package directory
// test_lang registers itself from an init function:
//
//	func init() {
//		testing.AddModule(&testing.ModuleSpec{
//			Name:  "test_lang.test_parser",
//			Cases: []*testing.Case{{
//				Name:  "ParserTest",
//				Tests: []testing.Test{{Name: "TestEmpty", Func: testEmpty}},
//			}},
//		})
//	}
package testing

import (
	"context"
	"fmt"

	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/testing"
)

type (
	// Case groups tests sharing set-up and tear-down code.
	Case = testing.Case
	// Test is a single test of a Case.
	Test = testing.Test
	// TestFunc is the code associated with a test.
	TestFunc = testing.TestFunc
	// State holds state relevant to the execution of a single test.
	State = testing.State
	// ModuleSpec describes a test module.
	ModuleSpec = testing.ModuleSpec
)

// AddModule registers m to the global registry. Errors are recorded and
// reported when the bundle starts.
func AddModule(m *ModuleSpec) {
	reg := testing.GlobalRegistry()
	if err := reg.AddModule(m); err != nil {
		reg.RecordError(err)
	}
}

// ContextLog formats its arguments using default formatting and logs them
// through the logger attached to ctx. Helpers that have no *State use it.
func ContextLog(ctx context.Context, args ...interface{}) {
	logging.Info(ctx, fmt.Sprint(args...))
}

// ContextLogf is similar to ContextLog but formats its arguments using
// fmt.Sprintf.
func ContextLogf(ctx context.Context, format string, args ...interface{}) {
	logging.Infof(ctx, format, args...)
}
