// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.chromium.org/distcovery/internal/logging"
)

// Error describes a failure reported by a test.
type Error struct {
	Reason string
	File   string
	Line   int
}

func (e *Error) String() string {
	if e.Line == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s:%d: %s", filepath.Base(e.File), e.Line, e.Reason)
}

// output accumulates the logs and errors of one test and its subtests.
type output struct {
	mu   sync.Mutex
	logs []string
	errs []*Error
}

func (o *output) log(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.logs = append(o.logs, msg)
}

func (o *output) fail(e *Error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errs = append(o.errs, e)
}

func (o *output) snapshot() (logs []string, errs []*Error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.logs...), append([]*Error(nil), o.errs...)
}

// State holds state relevant to the execution of a single test.
// Parts of its interface are patterned after Go's testing.T type.
// It is safe to call its methods concurrently while a test is running.
type State struct {
	ctx    context.Context
	out    *output
	prefix string

	mu     sync.Mutex
	failed bool
}

func newState(ctx context.Context, out *output, prefix string) *State {
	return &State{ctx: ctx, out: out, prefix: prefix}
}

// Log formats its arguments using default formatting and logs them.
func (s *State) Log(args ...interface{}) {
	s.log(fmt.Sprint(args...))
}

// Logf is similar to Log but formats its arguments using fmt.Sprintf.
func (s *State) Logf(format string, args ...interface{}) {
	s.log(fmt.Sprintf(format, args...))
}

func (s *State) log(msg string) {
	msg = strings.ToValidUTF8(s.prefix+msg, "�")
	s.out.log(msg)
	logging.Debug(s.ctx, msg)
}

// Error formats its arguments using default formatting and marks the test
// as having failed while letting the test continue execution.
func (s *State) Error(args ...interface{}) {
	s.fail(fmt.Sprint(args...))
}

// Errorf is similar to Error but formats its arguments using fmt.Sprintf.
func (s *State) Errorf(format string, args ...interface{}) {
	s.fail(fmt.Sprintf(format, args...))
}

// Fatal is similar to Error but additionally ends the test immediately.
func (s *State) Fatal(args ...interface{}) {
	s.fail(fmt.Sprint(args...))
	runtime.Goexit()
}

// Fatalf is similar to Fatal but formats its arguments using fmt.Sprintf.
func (s *State) Fatalf(format string, args ...interface{}) {
	s.fail(fmt.Sprintf(format, args...))
	runtime.Goexit()
}

// fail records a failure attributed to the caller of Error, Errorf, Fatal
// or Fatalf.
func (s *State) fail(reason string) {
	// Skip fail and the exported method that called it.
	const skipFrames = 2
	_, file, line, _ := runtime.Caller(skipFrames)
	s.failWithLocation(reason, file, line)
}

func (s *State) failWithLocation(reason, file string, line int) {
	s.mu.Lock()
	s.failed = true
	s.mu.Unlock()
	s.out.fail(&Error{
		Reason: strings.ToValidUTF8(s.prefix+reason, "�"),
		File:   file,
		Line:   line,
	})
}

// HasError reports whether the test, or any subtest started from it, has
// reported an error.
func (s *State) HasError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Run runs f as a subtest called name and waits for it to finish. Errors of
// the subtest also fail s. It returns whether the subtest passed.
func (s *State) Run(ctx context.Context, name string, f TestFunc) bool {
	sub := newState(ctx, s.out, s.prefix+name+": ")
	runAndRecover(ctx, f, sub)
	if sub.HasError() {
		s.mu.Lock()
		s.failed = true
		s.mu.Unlock()
		return false
	}
	return true
}

// runAndRecover runs f synchronously and reports a panic as an error.
// f runs within a goroutine so that Fatal's runtime.Goexit does not end the
// calling goroutine.
func runAndRecover(ctx context.Context, f TestFunc, s *State) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				s.failWithLocation(fmt.Sprint("Panic: ", r), "panic", 0)
			}
		}()
		f(ctx, s)
	}()
	<-done
}
