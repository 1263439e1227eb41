// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package run

import (
	"context"

	"go.chromium.org/distcovery/internal/command"
	"go.chromium.org/distcovery/internal/discovery"
	"go.chromium.org/distcovery/internal/importer"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/module"
	"go.chromium.org/distcovery/internal/naming"
	"go.chromium.org/distcovery/internal/uniquename"
)

// CollectTests walks the test root and fails with *NoTestModulesError if it
// holds no test module or package.
func CollectTests(ctx context.Context, fsys discovery.FileSystem, conv *naming.Convention, root, cwd string) (*discovery.Package, error) {
	pkg, err := discovery.Walk(ctx, fsys, conv, root, cwd)
	if err != nil {
		return nil, err
	}
	if len(pkg.Content) == 0 {
		return nil, &NoTestModulesError{Path: root, Convention: conv}
	}
	return pkg, nil
}

// Session is a discovered tree whose synthetic modules are installed into a
// module registry.
type Session struct {
	pkg    *discovery.Package
	imp    *importer.Importer
	remove func()
}

// NewSession builds the synthetic modules of pkg and installs them into mods
// until Close is called.
func NewSession(ctx context.Context, pkg *discovery.Package, mods *module.Registry, gen *uniquename.Generator) (*Session, error) {
	imp, err := importer.New(pkg, mods, gen)
	if err != nil {
		return nil, err
	}
	logging.Debugf(ctx, "Installing %d synthetic module(s), %d name(s) issued", len(imp.Aliases()), gen.Len())
	return &Session{pkg: pkg, imp: imp, remove: imp.Install()}, nil
}

// Close uninstalls the synthetic modules.
func (s *Session) Close() {
	s.remove()
}

// Package returns the discovered tree.
func (s *Session) Package() *discovery.Package { return s.pkg }

// Importer returns the importer serving the synthetic modules.
func (s *Session) Importer() *importer.Importer { return s.imp }

// Resolve returns the module name to import for alias: the synthetic module
// of a package or of importer.AllAlias, else the qualified name of a module.
func (s *Session) Resolve(alias string) (string, bool) {
	if name, ok := s.imp.Alias(alias); ok {
		return name, true
	}
	if item, ok := s.pkg.Content[alias]; ok {
		return item.QualifiedName(), true
	}
	return "", false
}

// Validate fails with *UnknownModulesError listing every alias that Resolve
// rejects.
func (s *Session) Validate(aliases []string) error {
	var unknown []string
	seen := make(map[string]struct{})
	for _, a := range aliases {
		if _, ok := s.Resolve(a); ok {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		unknown = append(unknown, a)
	}
	if len(unknown) > 0 {
		return &UnknownModulesError{Modules: unknown}
	}
	return nil
}

// ParseSelector splits a comma-separated selector. An empty selector
// selects everything.
func ParseSelector(s string) []string {
	aliases := command.SplitList(s, ",")
	if len(aliases) == 0 {
		return []string{importer.AllAlias}
	}
	return aliases
}
