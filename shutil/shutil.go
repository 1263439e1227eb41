// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil renders command lines so they can be pasted into a shell.
package shutil

import (
	"os/exec"
	"strings"
)

// isSafe reports whether c can appear unquoted in a shell word. A leading
// '=' triggers expansion in zsh, so it is only safe after the first byte.
func isSafe(c byte, first bool) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '=':
		return !first
	}
	return strings.IndexByte("-_@%+:,./", c) >= 0
}

// Escape quotes s for a POSIX shell unless every byte of it is safe.
func Escape(s string) string {
	safe := s != ""
	for i := 0; i < len(s) && safe; i++ {
		safe = isSafe(s[i], i == 0)
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// EscapeSlice escapes each of args and joins them with spaces.
func EscapeSlice(args []string) string {
	words := make([]string, 0, len(args))
	for _, a := range args {
		words = append(words, Escape(a))
	}
	return strings.Join(words, " ")
}

// CommandLine renders cmd as a shell command line, prefixed with its
// working directory if one is set.
func CommandLine(cmd *exec.Cmd) string {
	line := EscapeSlice(cmd.Args)
	if cmd.Dir != "" {
		line = "cd " + Escape(cmd.Dir) + " && " + line
	}
	return line
}
