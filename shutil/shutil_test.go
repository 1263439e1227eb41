// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shutil_test

import (
	"os/exec"
	"testing"

	"go.chromium.org/distcovery/shutil"
)

func TestEscape(t *testing.T) {
	for _, c := range []struct {
		in, exp string
	}{
		{``, `''`},
		{` `, `' '`},
		{"\t", "'\t'"},
		{`ab`, `ab`},
		{`a b`, `'a b'`},
		{`test_sub.test_sub_first`, `test_sub.test_sub_first`},
		{`-pkg=./...`, `-pkg=./...`},
		{`a!b`, `'a!b'`},
		{`'`, `''"'"''`},
		{`=foo`, `'=foo'`},
		{`foo=`, `foo=`},
		{`it's`, `'it'"'"'s'`},
	} {
		if s := shutil.Escape(c.in); s != c.exp {
			t.Errorf("Escape(%q) = %q; want %q", c.in, s, c.exp)
		}
	}
}

func TestEscapeSlice(t *testing.T) {
	if got, want := shutil.EscapeSlice([]string{"go", "tool", "covdata", "percent", "-i=/tmp/a b"}), `go tool covdata percent '-i=/tmp/a b'`; got != want {
		t.Errorf("EscapeSlice = %q; want %q", got, want)
	}
}

func TestCommandLine(t *testing.T) {
	cmd := exec.Command("go", "version")
	if got, want := shutil.CommandLine(cmd), "go version"; got != want {
		t.Errorf("CommandLine = %q; want %q", got, want)
	}
	cmd.Dir = "/tmp/my dir"
	if got, want := shutil.CommandLine(cmd), "cd '/tmp/my dir' && go version"; got != want {
		t.Errorf("CommandLine = %q; want %q", got, want)
	}
}
