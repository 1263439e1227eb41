// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package command contains code shared by the bundle's subcommands.
package command

import (
	"fmt"
	"io"

	"go.chromium.org/distcovery/errors"
)

// Exit statuses of a bundle.
const (
	StatusOK          = 0 // every selected test passed
	StatusTestFailure = 1 // at least one test failed
	StatusBadArgs     = 2 // bad command line or configuration
	StatusInternal    = 3 // discovery, import or coverage failure
)

// StatusError is an error carrying the exit status to use.
type StatusError struct {
	msg    string
	status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v (status %v)", e.msg, e.status)
}

// Status returns the exit status of e.
func (e *StatusError) Status() int { return e.status }

// NewStatusErrorf returns a StatusError with a formatted message.
func NewStatusErrorf(status int, format string, args ...interface{}) *StatusError {
	return &StatusError{fmt.Sprintf(format, args...), status}
}

// WriteError writes err to w as a single line and returns the exit status
// to use. Errors other than *StatusError map to StatusInternal.
func WriteError(w io.Writer, err error) int {
	msg, status := err.Error(), StatusInternal
	var se *StatusError
	if errors.As(err, &se) {
		msg, status = se.msg, se.status
	}
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	io.WriteString(w, msg)
	return status
}
