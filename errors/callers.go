// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	maxFrames = 8       // frames kept per error
	truncated = "\t..." // last line of a trace longer than maxFrames
)

// callers is a snapshot of program counters taken when an error is created.
type callers []uintptr

// record captures the caller's stack. skip=0 makes the function calling
// record the innermost frame.
func record(skip int) callers {
	pc := make([]uintptr, maxFrames+1)
	return callers(pc[:runtime.Callers(skip+2, pc)])
}

// String formats the trace as "\tat pkg.Func (file.go:line)" lines.
// An empty trace formats as an empty string.
func (c callers) String() string {
	if len(c) == 0 {
		return ""
	}
	var lines []string
	frames := runtime.CallersFrames(c)
	for {
		f, more := frames.Next()
		lines = append(lines, fmt.Sprintf("\tat %s (%s:%d)", f.Function, filepath.Base(f.File), f.Line))
		if !more {
			break
		}
		if len(lines) == maxFrames {
			lines = append(lines, truncated)
			break
		}
	}
	return strings.Join(lines, "\n")
}
