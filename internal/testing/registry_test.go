// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing_test

import (
	"context"
	"strings"
	gotesting "testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/module"
	"go.chromium.org/distcovery/internal/testing"
)

func noop(context.Context, *testing.State) {}

func simpleCase(name string, tests ...string) *testing.Case {
	c := &testing.Case{Name: name}
	for _, t := range tests {
		c.Tests = append(c.Tests, testing.Test{Name: t, Func: noop})
	}
	return c
}

func TestAddModuleValidation(t *gotesting.T) {
	for _, tc := range []struct {
		name string
		spec *testing.ModuleSpec
		ok   bool
	}{
		{"valid", &testing.ModuleSpec{Name: "test_sub.test_sub_first", Cases: []*testing.Case{simpleCase("FirstTest", "TestA")}}, true},
		{"no cases", &testing.ModuleSpec{Name: "test_first"}, true},
		{"empty name", &testing.ModuleSpec{Name: ""}, false},
		{"bad name", &testing.ModuleSpec{Name: "test-first"}, false},
		{"trailing dot", &testing.ModuleSpec{Name: "test_sub."}, false},
		{"lowercase case", &testing.ModuleSpec{Name: "test_x", Cases: []*testing.Case{simpleCase("firstTest", "TestA")}}, false},
		{"no tests", &testing.ModuleSpec{Name: "test_x", Cases: []*testing.Case{simpleCase("FirstTest")}}, false},
		{"duplicate test", &testing.ModuleSpec{Name: "test_x", Cases: []*testing.Case{simpleCase("FirstTest", "TestA", "TestA")}}, false},
		{"duplicate case", &testing.ModuleSpec{Name: "test_x", Cases: []*testing.Case{simpleCase("FirstTest", "TestA"), simpleCase("FirstTest", "TestB")}}, false},
		{"nil func", &testing.ModuleSpec{Name: "test_x", Cases: []*testing.Case{{Name: "FirstTest", Tests: []testing.Test{{Name: "TestA"}}}}}, false},
		{"negative timeout", &testing.ModuleSpec{Name: "test_x", Cases: []*testing.Case{{Name: "FirstTest", Timeout: -1, Tests: []testing.Test{{Name: "TestA", Func: noop}}}}}, false},
	} {
		t.Run(tc.name, func(t *gotesting.T) {
			err := testing.NewRegistry().AddModule(tc.spec)
			if tc.ok && err != nil {
				t.Errorf("AddModule failed: %v", err)
			} else if !tc.ok && err == nil {
				t.Error("AddModule succeeded unexpectedly")
			}
		})
	}
}

func TestAddModuleDuplicate(t *gotesting.T) {
	reg := testing.NewRegistry()
	if err := reg.AddModule(&testing.ModuleSpec{Name: "test_first"}); err != nil {
		t.Fatal("AddModule failed: ", err)
	}
	if err := reg.AddModule(&testing.ModuleSpec{Name: "test_first"}); err == nil {
		t.Error("AddModule accepted a duplicate module")
	}
	if err := reg.AddModule(&testing.ModuleSpec{Name: "test_second"}); err != nil {
		t.Fatal("AddModule failed: ", err)
	}
	if diff := cmp.Diff(reg.Modules(), []string{"test_first", "test_second"}); diff != "" {
		t.Errorf("Modules() mismatch (-got +want):\n%s", diff)
	}
}

func TestInstallLoadsModule(t *gotesting.T) {
	ctx := context.Background()
	reg := testing.NewRegistry()
	first, second := simpleCase("FirstTest", "TestA"), simpleCase("SecondTest", "TestB")
	if err := reg.AddModule(&testing.ModuleSpec{Name: "test_sub.test_sub_first", Cases: []*testing.Case{first, second}}); err != nil {
		t.Fatal("AddModule failed: ", err)
	}
	mods := module.NewRegistry()
	defer reg.Install(mods)()

	m, err := mods.Import(ctx, "test_sub.test_sub_first")
	if err != nil {
		t.Fatal("Import failed: ", err)
	}
	if diff := cmp.Diff(m.Namespace.Names(), []string{"FirstTest", "SecondTest"}); diff != "" {
		t.Errorf("Namespace mismatch (-got +want):\n%s", diff)
	}
	if v, _ := m.Namespace.Lookup("FirstTest"); v != first {
		t.Errorf("FirstTest bound to %v; want %v", v, first)
	}
	if m.Package != "test_sub" {
		t.Errorf("Package = %q; want %q", m.Package, "test_sub")
	}
	if !strings.HasSuffix(m.File, "registry_test.go") {
		t.Errorf("File = %q; want registering file", m.File)
	}
	if got := first.ID("TestA"); got != "test_sub.test_sub_first.FirstTest.TestA" {
		t.Errorf("ID = %q", got)
	}

	if _, err := mods.Import(ctx, "test_sub.test_sub_first"); err != nil {
		t.Fatal("Second Import failed: ", err)
	}
	if n := reg.Executions("test_sub.test_sub_first"); n != 1 {
		t.Errorf("Module executed %d times; want 1", n)
	}
	if _, err := mods.Import(ctx, "test_other"); err == nil {
		t.Error("Import of unregistered module succeeded")
	}
}

func TestInitImportsItself(t *gotesting.T) {
	ctx := context.Background()
	reg := testing.NewRegistry()
	mods := module.NewRegistry()
	var seen *module.Module
	var seenNames []string
	if err := reg.AddModule(&testing.ModuleSpec{
		Name: "test_self",
		Init: func(ctx context.Context) error {
			m, err := mods.Import(ctx, "test_self")
			if err != nil {
				return err
			}
			seen, seenNames = m, m.Namespace.Names()
			return nil
		},
		Cases: []*testing.Case{simpleCase("SelfTest", "TestA")},
	}); err != nil {
		t.Fatal("AddModule failed: ", err)
	}
	defer reg.Install(mods)()

	m, err := mods.Import(ctx, "test_self")
	if err != nil {
		t.Fatal("Import failed: ", err)
	}
	if seen != m {
		t.Errorf("Import from Init returned %p; want the module being loaded %p", seen, m)
	}
	if diff := cmp.Diff(seenNames, []string{"SelfTest"}); diff != "" {
		t.Errorf("Namespace seen from Init mismatch (-got +want):\n%s", diff)
	}
	if n := reg.Executions("test_self"); n != 1 {
		t.Errorf("Module executed %d times; want 1", n)
	}
}

func TestInitFailureRemovesModule(t *gotesting.T) {
	ctx := context.Background()
	reg := testing.NewRegistry()
	if err := reg.AddModule(&testing.ModuleSpec{
		Name: "test_broken",
		Init: func(ctx context.Context) error { return errors.New("boom") },
	}); err != nil {
		t.Fatal("AddModule failed: ", err)
	}
	mods := module.NewRegistry()
	defer reg.Install(mods)()

	for i := 0; i < 2; i++ {
		if _, err := mods.Import(ctx, "test_broken"); err == nil || !strings.Contains(err.Error(), "boom") {
			t.Errorf("Import returned %v; want boom", err)
		}
		if _, ok := mods.Lookup("test_broken"); ok {
			t.Error("Failed module left in module registry")
		}
	}
	if n := reg.Executions("test_broken"); n != 2 {
		t.Errorf("Module executed %d times; want 2", n)
	}
}

func TestSetGlobalRegistryForTesting(t *gotesting.T) {
	orig := testing.GlobalRegistry()
	reg := testing.NewRegistry()
	restore := testing.SetGlobalRegistryForTesting(reg)
	if testing.GlobalRegistry() != reg {
		t.Error("GlobalRegistry did not return the replacement")
	}
	restore()
	if testing.GlobalRegistry() != orig {
		t.Error("GlobalRegistry was not restored")
	}
}

func TestMatcher(t *gotesting.T) {
	m, err := testing.NewMatcher([]string{"test_first.*", "test_sub.test_sub_first.FirstTest.TestA"})
	if err != nil {
		t.Fatal("NewMatcher failed: ", err)
	}
	for id, want := range map[string]bool{
		"test_first.FirstTest.TestA":              true,
		"test_sub.test_sub_first.FirstTest.TestA": true,
		"test_sub.test_sub_first.FirstTest.TestB": false,
		"test_firstx.FirstTest.TestA":             false,
	} {
		if got := m.Match(id); got != want {
			t.Errorf("Match(%q) = %v; want %v", id, got, want)
		}
	}

	all, err := testing.NewMatcher(nil)
	if err != nil {
		t.Fatal("NewMatcher failed: ", err)
	}
	if !all.Match("anything") {
		t.Error("Empty matcher did not match")
	}
	if _, err := testing.NewMatcher([]string{"bad pattern"}); err == nil {
		t.Error("NewMatcher accepted a pattern with a space")
	}
}
