// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package discovery

import (
	"os"
)

// FileSystem is the part of a file system the walker needs.
type FileSystem interface {
	// ReadDir returns the names of the entries in the directory at path.
	ReadDir(path string) ([]string, error)
	// IsDir reports whether path is a directory.
	IsDir(path string) bool
	// IsFile reports whether path is a regular file.
	IsFile(path string) bool
}

// OS is the FileSystem backed by the os package. ReadDir returns names
// sorted lexicographically.
var OS FileSystem = osFS{}

type osFS struct{}

func (osFS) ReadDir(path string) ([]string, error) {
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ents))
	for i, ent := range ents {
		names[i] = ent.Name()
	}
	return names, nil
}

func (osFS) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func (osFS) IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
