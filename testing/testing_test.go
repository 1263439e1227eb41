// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing_test

import (
	"context"
	"strings"
	gotesting "testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/logging/loggingtest"
	itesting "go.chromium.org/distcovery/internal/testing"
	"go.chromium.org/distcovery/testing"
)

func TestAddModule(t *gotesting.T) {
	reg := itesting.NewRegistry()
	defer itesting.SetGlobalRegistryForTesting(reg)()

	testing.AddModule(&testing.ModuleSpec{Name: "test_first"})
	testing.AddModule(&testing.ModuleSpec{Name: "test_first"})

	if diff := cmp.Diff(reg.Modules(), []string{"test_first"}); diff != "" {
		t.Errorf("Modules() mismatch (-got +want):\n%s", diff)
	}
	errs := reg.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "already registered") {
		t.Errorf("Errors() = %v; want one duplicate registration error", errs)
	}
}

func TestContextLog(t *gotesting.T) {
	logger := loggingtest.NewLogger(t, logging.LevelInfo)
	ctx := logging.AttachLogger(context.Background(), logger)

	testing.ContextLog(ctx, "a", 1)
	testing.ContextLogf(ctx, "b%d", 2)

	if diff := cmp.Diff(logger.Logs(), []string{"a1", "b2"}); diff != "" {
		t.Errorf("Logs mismatch (-got +want):\n%s", diff)
	}
}
