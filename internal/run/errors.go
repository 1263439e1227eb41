// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package run

import (
	"fmt"
	"strings"

	"go.chromium.org/distcovery/internal/naming"
)

// NoTestModulesError is returned when discovery finds nothing to run.
type NoTestModulesError struct {
	// Path is the test root as configured.
	Path       string
	Convention *naming.Convention
}

func (e *NoTestModulesError) Error() string {
	return fmt.Sprintf("Couldn't find any test module. Make sure that path %q contains any valid module named %q or package %q.",
		e.Path, e.Convention.ModuleGlob(), e.Convention.PackageGlob())
}

// UnknownModulesError is returned when requested aliases match nothing.
type UnknownModulesError struct {
	// Modules lists the unknown aliases in request order.
	Modules []string
}

func (e *UnknownModulesError) Error() string {
	quoted := make([]string, len(e.Modules))
	for i, m := range e.Modules {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("Unknown module: %s.", quoted[0])
	}
	last := len(quoted) - 1
	return fmt.Sprintf("Unknown modules: %s and %s.", strings.Join(quoted[:last], ", "), quoted[last])
}
