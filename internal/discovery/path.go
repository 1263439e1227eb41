// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package discovery

import (
	"fmt"
	"path/filepath"
)

// InvalidRootError is returned when the test root is not inside the current
// directory.
type InvalidRootError struct {
	Tests   string // absolute test root
	Current string // current directory
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("Can't run tests outside current directory. "+
		"Tests directory: %q. Current directory: %q.", e.Tests, e.Current)
}

// SplitPath returns the path segments leading from root to path. It strips
// the last segment of path until the remainder equals root, so the result
// includes the final segment of path itself and is empty if path == root.
// If path runs out of segments first, *InvalidRootError is returned.
func SplitPath(path, root string) ([]string, error) {
	head := path
	var tail []string
	for head != root {
		parent := filepath.Dir(head)
		if parent == head {
			return nil, &InvalidRootError{Tests: path, Current: root}
		}
		tail = append(tail, filepath.Base(head))
		head = parent
	}
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
	return tail, nil
}
