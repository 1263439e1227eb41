// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package test_internal

import (
	"context"

	"go.chromium.org/distcovery/internal/uniquename"
	"go.chromium.org/distcovery/testing"
)

func init() {
	testing.AddModule(&testing.ModuleSpec{
		Name: "test_internal.test_uniquename",
		Cases: []*testing.Case{{
			Name: "GeneratorTest",
			Desc: "Checks synthetic module names",
			Tests: []testing.Test{
				{Name: "TestDistinct", Func: testDistinct},
				{Name: "TestExhausted", Func: testExhausted},
			},
		}},
	})
}

func testDistinct(ctx context.Context, s *testing.State) {
	g := uniquename.New(10000, 2)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name, err := g.New()
		if err != nil {
			s.Fatal("New failed: ", err)
		}
		if seen[name] {
			s.Fatalf("New returned %s twice", name)
		}
		seen[name] = true
	}
	testing.ContextLogf(ctx, "Generated %d names", len(seen))
}

func testExhausted(ctx context.Context, s *testing.State) {
	g := uniquename.New(1, 1)
	for i := 0; i < 11; i++ {
		if _, err := g.New(); err != nil {
			s.Log("Exhausted: ", err)
			return
		}
	}
	s.Error("New did not fail after 11 names with 1 digit")
}
