// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package run

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/discovery"
)

// WriteList writes the tree below pkg, one alias per line. Lines are
// indented by one tab per level below the root and packages end with ':'.
func WriteList(w io.Writer, pkg *discovery.Package) error {
	if _, err := io.WriteString(w, "Test suites:\n"); err != nil {
		return err
	}
	for _, e := range pkg.Enumerate(1) {
		suffix := ""
		if e.IsPackage {
			suffix = ":"
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("\t", e.Level), e.Alias, suffix); err != nil {
			return err
		}
	}
	return nil
}

// WriteTree draws the tree below pkg with box-drawing characters. The root
// is labeled with title.
func WriteTree(w io.Writer, pkg *discovery.Package, title string) error {
	root := gtree.NewRoot(title)
	addNodes(root, pkg)
	if err := gtree.OutputProgrammably(w, root); err != nil {
		return errors.Wrap(err, "failed to draw tree")
	}
	return nil
}

func addNodes(node *gtree.Node, pkg *discovery.Package) {
	for _, m := range pkg.Modules {
		node.Add(m.AliasPath[len(m.AliasPath)-1])
	}
	for _, sub := range pkg.Packages {
		addNodes(node.Add(sub.AliasPath[len(sub.AliasPath)-1]+":"), sub)
	}
}
