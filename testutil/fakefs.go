// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testutil

import (
	"os"
	"path/filepath"

	"go.chromium.org/distcovery/errors"
)

// FakeFS is an in-memory file system whose directory listings keep the order
// they were declared in. It satisfies discovery.FileSystem.
type FakeFS struct {
	tree map[string][]string
}

// NewFakeFS creates a FakeFS from tree. Keys are paths; a nil value declares
// a regular file and a non-nil value (possibly empty) declares a directory
// listing those entry names.
func NewFakeFS(tree map[string][]string) *FakeFS {
	fs := &FakeFS{tree: make(map[string][]string, len(tree))}
	for p, names := range tree {
		fs.tree[filepath.Clean(p)] = names
	}
	return fs
}

// ReadDir returns the entry names declared for path.
func (fs *FakeFS) ReadDir(path string) ([]string, error) {
	names, ok := fs.tree[filepath.Clean(path)]
	if !ok {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}
	if names == nil {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: errNotDir}
	}
	return append([]string(nil), names...), nil
}

// IsDir reports whether path was declared as a directory.
func (fs *FakeFS) IsDir(path string) bool {
	names, ok := fs.tree[filepath.Clean(path)]
	return ok && names != nil
}

// IsFile reports whether path was declared as a regular file.
func (fs *FakeFS) IsFile(path string) bool {
	names, ok := fs.tree[filepath.Clean(path)]
	return ok && names == nil
}

var errNotDir = errors.New("not a directory")
