// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package errors constructs errors that remember where they were created.
//
// Discovery, the synthetic importer and test modules registered with the
// testing package should use this package instead of the standard errors
// package or fmt.Errorf, so that failures reported by a test run carry a
// stack trace.
//
//	errors.New("module not registered")
//	errors.Errorf("module %q not registered", name)
//	errors.Wrap(err, "failed to load synthetic module")
//	errors.Wrapf(err, "failed to import %s", target)
//
// Formatting an error with the "%+v" verb prints the whole chain, each link
// followed by the location it was created at.
package errors

import (
	goerrors "errors"
	"fmt"
	"io"
	"strings"
)

// impl is the error implementation used by this package.
type impl struct {
	msg   string  // message prepended to cause
	stk   callers // where this error was created
	cause error   // wrapped error if non-nil
}

// Error implements the error interface.
func (e *impl) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
}

// Unwrap returns the wrapped error, allowing Is and As to walk the chain.
func (e *impl) Unwrap() error {
	return e.cause
}

// formatChain formats an error chain.
func formatChain(err error) string {
	var chain []string
	for err != nil {
		if e, ok := err.(*impl); !ok {
			chain = append(chain, fmt.Sprintf("%s\n\tat ???", err.Error()))
			err = nil
		} else {
			if len(e.stk) == 0 {
				chain = append(chain, e.msg)
			} else {
				chain = append(chain, fmt.Sprintf("%s\n%v", e.msg, e.stk))
			}
			err = e.cause
		}
	}
	return strings.Join(chain, "\n")
}

// Format implements the fmt.Formatter interface.
// "%+v" formats the whole error chain with stack traces.
func (e *impl) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		io.WriteString(s, formatChain(e))
	} else {
		io.WriteString(s, e.Error())
	}
}

// New creates a new error with the given message, recording the caller's
// location.
func New(msg string) error {
	s := record(1)
	return &impl{msg, s, nil}
}

// Errorf is similar to New but formats its arguments using fmt.Sprintf.
func Errorf(format string, args ...interface{}) error {
	s := record(1)
	msg := fmt.Sprintf(format, args...)
	return &impl{msg, s, nil}
}

// Wrap creates a new error with the given message, wrapping cause.
// If cause is nil, this is the same as New.
func Wrap(cause error, msg string) error {
	s := record(1)
	return &impl{msg, s, cause}
}

// Wrapf is similar to Wrap but formats its arguments using fmt.Sprintf.
// If cause is nil, this is the same as Errorf.
func Wrapf(cause error, format string, args ...interface{}) error {
	s := record(1)
	msg := fmt.Sprintf(format, args...)
	return &impl{msg, s, cause}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so,
// sets target to that error value and returns true.
func As(err error, target interface{}) bool {
	return goerrors.As(err, target)
}
