// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package run

import (
	"bytes"
	"context"
	"io"
	"strings"
	gotesting "testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/google/go-cmp/cmp"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/importer"
	"go.chromium.org/distcovery/internal/module"
	"go.chromium.org/distcovery/internal/naming"
	"go.chromium.org/distcovery/internal/testing"
	"go.chromium.org/distcovery/internal/uniquename"
	"go.chromium.org/distcovery/testutil"
)

// fullTestTree mirrors a typical test root: top-level modules, nested
// packages, a directory lacking the marker and misnamed entries.
func fullTestTree() *testutil.FakeFS {
	return testutil.NewFakeFS(map[string][]string{
		".": {"doc.go", "test_first.go", "test_second.go",
			"test_sub_first", "t_sub_first", "test_sub_third", "test_sub_second"},
		"doc.go":                                           nil,
		"test_first.go":                                    nil,
		"test_second.go":                                   nil,
		"test_sub_first":                                   {"doc.go", "test_sub_first.go"},
		"test_sub_first/doc.go":                            nil,
		"test_sub_first/test_sub_first.go":                 nil,
		"t_sub_first":                                      {"doc.go", "test_sub_first.go"},
		"t_sub_first/doc.go":                               nil,
		"t_sub_first/test_sub_first.go":                    nil,
		"test_sub_second":                                  {"test_sub_first.go"},
		"test_sub_second/test_sub_first.go":                nil,
		"test_sub_third":                                   {"doc.go", "test_sub_first.go", "test_sub_second"},
		"test_sub_third/doc.go":                            nil,
		"test_sub_third/test_sub_first.go":                 nil,
		"test_sub_third/test_sub_second":                   {"doc.go", "test_sub_first.go", "t_sub_second.go"},
		"test_sub_third/test_sub_second/doc.go":            nil,
		"test_sub_third/test_sub_second/test_sub_first.go": nil,
		"test_sub_third/test_sub_second/t_sub_second.go":   nil,
	})
}

// qualifiedNames lists the modules of fullTestTree.
var qualifiedNames = []string{
	"test_first",
	"test_second",
	"test_sub_first.test_sub_first",
	"test_sub_third.test_sub_first",
	"test_sub_third.test_sub_second.test_sub_first",
}

func TestCollectTestsEmpty(t *gotesting.T) {
	fs := testutil.NewFakeFS(map[string][]string{".": {}})
	_, err := CollectTests(context.Background(), fs, naming.Default, ".", ".")
	var nt *NoTestModulesError
	if !errors.As(err, &nt) {
		t.Fatalf("CollectTests returned %v; want NoTestModulesError", err)
	}
	const msg = `Couldn't find any test module. Make sure that path "." contains any valid module named "test_*.go" or package "test_*".`
	if err.Error() != msg {
		t.Errorf("Error() = %q; want %q", err.Error(), msg)
	}
}

func TestWriteList(t *gotesting.T) {
	pkg, err := CollectTests(context.Background(), fullTestTree(), naming.Default, ".", ".")
	if err != nil {
		t.Fatal("CollectTests failed: ", err)
	}
	var buf bytes.Buffer
	if err := WriteList(&buf, pkg); err != nil {
		t.Fatal("WriteList failed: ", err)
	}
	const exp = "Test suites:\n" +
		"\tfirst\n" +
		"\tsecond\n" +
		"\tsub_first:\n" +
		"\t\tsub_first.sub_first\n" +
		"\tsub_third:\n" +
		"\t\tsub_third.sub_first\n" +
		"\t\tsub_third.sub_second:\n" +
		"\t\t\tsub_third.sub_second.sub_first\n"
	if diff := cmp.Diff(buf.String(), exp); diff != "" {
		t.Errorf("WriteList mismatch (-got +want):\n%s", diff)
	}
}

func TestWriteTree(t *gotesting.T) {
	pkg, err := CollectTests(context.Background(), fullTestTree(), naming.Default, ".", ".")
	if err != nil {
		t.Fatal("CollectTests failed: ", err)
	}
	var buf bytes.Buffer
	if err := WriteTree(&buf, pkg, "test"); err != nil {
		t.Fatal("WriteTree failed: ", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 9 || lines[0] != "test" {
		t.Fatalf("WriteTree wrote %q; want root line and 8 entries", buf.String())
	}
	for i, label := range []string{"first", "second", "sub_first:", "sub_first", "sub_third:", "sub_first", "sub_second:", "sub_first"} {
		if !strings.HasSuffix(lines[i+1], " "+label) {
			t.Errorf("Line %d = %q; want label %q", i+1, lines[i+1], label)
		}
	}
}

func newSession(t *gotesting.T) *Session {
	ctx := context.Background()
	pkg, err := CollectTests(ctx, fullTestTree(), naming.Default, ".", ".")
	if err != nil {
		t.Fatal("CollectTests failed: ", err)
	}
	sess, err := NewSession(ctx, pkg, module.NewRegistry(), uniquename.New(10, 15))
	if err != nil {
		t.Fatal("NewSession failed: ", err)
	}
	t.Cleanup(sess.Close)
	return sess
}

func TestResolveRoundTrip(t *gotesting.T) {
	sess := newSession(t)
	for _, m := range sess.Package().ModulesBelow() {
		if name, ok := sess.Resolve(m.Alias()); !ok || name != m.QualifiedName() {
			t.Errorf("Resolve(%q) = %q, %v; want %q", m.Alias(), name, ok, m.QualifiedName())
		}
	}
	for _, alias := range []string{importer.AllAlias, "sub_first", "sub_third.sub_second"} {
		want, _ := sess.Importer().Alias(alias)
		if name, ok := sess.Resolve(alias); !ok || name != want {
			t.Errorf("Resolve(%q) = %q, %v; want synthetic %q", alias, name, ok, want)
		}
	}
}

func TestValidate(t *gotesting.T) {
	sess := newSession(t)
	for _, tc := range []struct {
		aliases []string
		unknown []string
		msg     string
	}{
		{[]string{"first", "sub_third.sub_second"}, nil, ""},
		{[]string{"first", "bogus"}, []string{"bogus"}, `Unknown module: "bogus".`},
		{[]string{"a", "first", "b", "a"}, []string{"a", "b"}, `Unknown modules: "a" and "b".`},
		{[]string{"a", "b", "c"}, []string{"a", "b", "c"}, `Unknown modules: "a", "b" and "c".`},
		{[]string{"sub_second"}, []string{"sub_second"}, `Unknown module: "sub_second".`},
	} {
		err := sess.Validate(tc.aliases)
		if tc.unknown == nil {
			if err != nil {
				t.Errorf("Validate(%q) failed: %v", tc.aliases, err)
			}
			continue
		}
		var um *UnknownModulesError
		if !errors.As(err, &um) {
			t.Errorf("Validate(%q) returned %v; want UnknownModulesError", tc.aliases, err)
			continue
		}
		if diff := cmp.Diff(um.Modules, tc.unknown); diff != "" {
			t.Errorf("Validate(%q) unknown mismatch (-got +want):\n%s", tc.aliases, diff)
		}
		if err.Error() != tc.msg {
			t.Errorf("Validate(%q) message = %q; want %q", tc.aliases, err.Error(), tc.msg)
		}
	}
}

func TestParseSelector(t *gotesting.T) {
	for s, exp := range map[string][]string{
		"":                 {importer.AllAlias},
		" , ":              {importer.AllAlias},
		"first":            {"first"},
		"first, sub_third": {"first", "sub_third"},
	} {
		if diff := cmp.Diff(ParseSelector(s), exp); diff != "" {
			t.Errorf("ParseSelector(%q) mismatch (-got +want):\n%s", s, diff)
		}
	}
}

// recordingCoverage records the calls it receives.
type recordingCoverage struct {
	calls []string
}

func (c *recordingCoverage) Start(ctx context.Context) error {
	c.calls = append(c.calls, "start")
	return nil
}

func (c *recordingCoverage) Stop(ctx context.Context) error {
	c.calls = append(c.calls, "stop")
	return nil
}

func (c *recordingCoverage) Report(ctx context.Context, w io.Writer) error {
	c.calls = append(c.calls, "report")
	return nil
}

// registerModules registers every module of fullTestTree with one passing
// test each, plus a failing test in test_second.
func registerModules(t *gotesting.T) (*testing.Registry, *module.Registry) {
	reg := testing.NewRegistry()
	pass := func(context.Context, *testing.State) {}
	for _, name := range qualifiedNames {
		c := &testing.Case{Name: "Case", Tests: []testing.Test{{Name: "TestPass", Func: pass}}}
		if name == "test_second" {
			c.Tests = append(c.Tests, testing.Test{Name: "TestFail", Func: func(ctx context.Context, s *testing.State) {
				s.Error("failed")
			}})
		}
		if err := reg.AddModule(&testing.ModuleSpec{Name: name, Cases: []*testing.Case{c}}); err != nil {
			t.Fatal("AddModule failed: ", err)
		}
	}
	mods := module.NewRegistry()
	t.Cleanup(reg.Install(mods))
	return reg, mods
}

func TestRun(t *gotesting.T) {
	for _, tc := range []struct {
		selector []string
		exp      Summary
		covCalls []string
	}{
		{nil, Summary{Modules: 1, Run: 6, Failures: 1}, []string{"start", "stop", "report"}},
		{[]string{"first"}, Summary{Modules: 1, Run: 1}, []string{"start", "stop", "report"}},
		{[]string{"sub_third", "second"}, Summary{Modules: 2, Run: 4, Failures: 1}, []string{"start", "stop", "start", "stop", "report"}},
	} {
		reg, mods := registerModules(t)
		cov := &recordingCoverage{}
		var out bytes.Buffer
		sum, err := Run(context.Background(), &Options{
			Root:         ".",
			Cwd:          ".",
			Convention:   naming.Default,
			Selector:     tc.selector,
			Argv:         []string{"bundle"},
			NameAttempts: 10,
			NameDigits:   15,
		}, &Deps{
			FS:       fullTestTree(),
			Modules:  mods,
			Coverage: cov,
			Out:      &out,
			Clock:    fakeclock.NewFakeClock(time.Unix(0, 0)),
		})
		if err != nil {
			t.Fatalf("Run(%q) failed: %v", tc.selector, err)
		}
		if diff := cmp.Diff(*sum, tc.exp); diff != "" {
			t.Errorf("Run(%q) summary mismatch (-got +want):\n%s", tc.selector, diff)
		}
		if diff := cmp.Diff(cov.calls, tc.covCalls); diff != "" {
			t.Errorf("Run(%q) coverage calls mismatch (-got +want):\n%s", tc.selector, diff)
		}
		for _, name := range reg.Modules() {
			if n := reg.Executions(name); n > 1 {
				t.Errorf("Run(%q) executed %s %d times", tc.selector, name, n)
			}
		}
	}
}

func TestRunUnknownModule(t *gotesting.T) {
	_, mods := registerModules(t)
	cov := &recordingCoverage{}
	_, err := Run(context.Background(), &Options{
		Root:         ".",
		Cwd:          ".",
		Convention:   naming.Default,
		Selector:     []string{"first", "bogus"},
		NameAttempts: 10,
		NameDigits:   15,
	}, &Deps{FS: fullTestTree(), Modules: mods, Coverage: cov, Out: io.Discard})
	var um *UnknownModulesError
	if !errors.As(err, &um) {
		t.Fatalf("Run returned %v; want UnknownModulesError", err)
	}
	if len(cov.calls) != 0 {
		t.Errorf("Coverage used before validation: %v", cov.calls)
	}
}

func TestRunInvalidRoot(t *gotesting.T) {
	_, mods := registerModules(t)
	_, err := Run(context.Background(), &Options{
		Root:         "/elsewhere",
		Cwd:          ".",
		Convention:   naming.Default,
		NameAttempts: 10,
		NameDigits:   15,
	}, &Deps{FS: fullTestTree(), Modules: mods, Out: io.Discard})
	if err == nil || !strings.HasPrefix(err.Error(), "Can't run tests outside current directory.") {
		t.Errorf("Run returned %v; want invalid root error", err)
	}
}
