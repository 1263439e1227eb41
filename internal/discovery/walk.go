// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package discovery finds test modules and test packages below a test root.
package discovery

import (
	"context"
	"path/filepath"

	"golang.org/x/exp/slices"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/naming"
)

// Walk discovers the tree below root. Names are anchored at cwd: the base of
// every returned node is the list of directories from cwd down to root, and
// *InvalidRootError is returned if root is not inside cwd.
//
// A relative root is resolved against cwd, not against the working directory
// of the process, and node paths are built from the resolved root. root
// itself is treated as a package whatever its name is.
func Walk(ctx context.Context, fsys FileSystem, conv *naming.Convention, root, cwd string) (*Package, error) {
	abs := root
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, root)
	}
	base, err := SplitPath(filepath.Clean(abs), filepath.Clean(cwd))
	if err != nil {
		return nil, err
	}
	pkg := newPackage(Node{Base: base, Path: abs})
	if err := pkg.Walk(ctx, fsys, conv); err != nil {
		return nil, err
	}
	logging.Debugf(ctx, "Discovered %d test modules and packages in %s", len(pkg.Content), root)
	return pkg, nil
}

// Walk populates p from the file system, recursing into child packages.
// Entries not following conv are skipped.
func (p *Package) Walk(ctx context.Context, fsys FileSystem, conv *naming.Convention) error {
	names, err := fsys.ReadDir(p.Path)
	if err != nil {
		return errors.Wrapf(err, "failed to list %s", p.Path)
	}
	for _, name := range names {
		path := filepath.Join(p.Path, name)

		if m, ok := conv.MatchPackage(name); ok {
			if !isPackage(fsys, conv, path) {
				logging.Debugf(ctx, "Skipping %s: not a directory with %s", path, conv.Marker)
				continue
			}
			sub := newPackage(p.child(path, m.Alias, m.Name))
			if err := sub.Walk(ctx, fsys, conv); err != nil {
				return err
			}
			for alias, item := range sub.Content {
				p.Content[alias] = item
			}
			p.Content[sub.Alias()] = sub
			p.Packages = append(p.Packages, sub)
			logging.Debugf(ctx, "Found test package %s", sub.FullName())
			continue
		}

		if m, ok := conv.MatchModule(name); ok && fsys.IsFile(path) {
			mod := &Module{Node: p.child(path, m.Alias, m.Name)}
			p.Content[mod.Alias()] = mod
			p.Modules = append(p.Modules, mod)
			logging.Debugf(ctx, "Found test module %s", mod.FullName())
		}
	}
	return nil
}

// Aliases returns the keys of p.Content in lexicographic order.
func (p *Package) Aliases() []string {
	aliases := make([]string, 0, len(p.Content))
	for alias := range p.Content {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)
	return aliases
}

func isPackage(fsys FileSystem, conv *naming.Convention, path string) bool {
	return fsys.IsDir(path) && fsys.IsFile(filepath.Join(path, conv.Marker))
}
