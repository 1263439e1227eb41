// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package main implements the distcovery self-test bundle. Its test root is
// the test directory next to this file; run it from there:
//
//	go build -o /tmp/distcovery . && /tmp/distcovery run -verbosity=2
package main

import (
	"os"

	"go.chromium.org/distcovery/bundle"

	// Test modules register themselves at init time.
	_ "go.chromium.org/distcovery/cmd/distcovery/test"
	_ "go.chromium.org/distcovery/cmd/distcovery/test/test_internal"
)

func main() {
	os.Exit(bundle.Main(os.Args[1:], os.Stdout, os.Stderr))
}
