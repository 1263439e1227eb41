// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package test holds the top-level test modules of the self-test bundle.
package test

import (
	"context"

	"go.chromium.org/distcovery/shutil"
	"go.chromium.org/distcovery/testing"
)

func init() {
	testing.AddModule(&testing.ModuleSpec{
		Name: "test_naming",
		Cases: []*testing.Case{{
			Name:     "EscapeTest",
			Desc:     "Checks shell escaping of logged command lines",
			Contacts: []string{"distcovery-dev@chromium.org"},
			Tests: []testing.Test{
				{Name: "TestSafe", Func: testSafe},
				{Name: "TestQuoted", Func: testQuoted},
			},
		}},
	})
}

func testSafe(ctx context.Context, s *testing.State) {
	for _, in := range []string{"go", "-i=/tmp/cover", "test_sub.test_sub_first"} {
		if out := shutil.Escape(in); out != in {
			s.Errorf("Escape(%q) = %q; want unchanged", in, out)
		}
	}
}

func testQuoted(ctx context.Context, s *testing.State) {
	if out := shutil.Escape("a b"); out != "'a b'" {
		s.Errorf("Escape(%q) = %q; want %q", "a b", out, "'a b'")
	}
}
