// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package discovery

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/distcovery/errors"
)

func TestSplitPath(t *testing.T) {
	for _, tc := range []struct {
		path, root string
		want       []string
	}{
		{filepath.Join("1", "2", "3", "4", "5"), filepath.Join("1", "2"), []string{"3", "4", "5"}},
		{"/work/proj/test", "/work/proj", []string{"test"}},
		{"/work/proj", "/work/proj", nil},
		{"/work/proj/a/b", "/", []string{"work", "proj", "a", "b"}},
	} {
		got, err := SplitPath(tc.path, tc.root)
		if err != nil {
			t.Errorf("SplitPath(%q, %q) failed: %v", tc.path, tc.root, err)
			continue
		}
		if diff := cmp.Diff(got, tc.want); diff != "" {
			t.Errorf("SplitPath(%q, %q) mismatch (-got +want):\n%s", tc.path, tc.root, diff)
		}
	}
}

func TestSplitPathInvalidRoot(t *testing.T) {
	for _, tc := range []struct{ path, root string }{
		{filepath.Join("1", "2", "3", "4", "5"), filepath.Join("a", "b")},
		{"/work/other/test", "/work/proj"},
		{"/work", "/work/proj"},
	} {
		_, err := SplitPath(tc.path, tc.root)
		var ire *InvalidRootError
		if !errors.As(err, &ire) {
			t.Errorf("SplitPath(%q, %q) returned %v; want InvalidRootError", tc.path, tc.root, err)
			continue
		}
		want := `Can't run tests outside current directory. Tests directory: "` + tc.path +
			`". Current directory: "` + tc.root + `".`
		if msg := err.Error(); msg != want {
			t.Errorf("SplitPath(%q, %q) error = %q; want %q", tc.path, tc.root, msg, want)
		}
	}
}
