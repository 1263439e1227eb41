// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package importer provides synthetic modules aggregating the test cases of
// whole test packages.
//
// Every test package found by discovery, and the walk root itself, gets a
// randomly named synthetic module. Loading that module imports every test
// module below the package and re-exports their cases under the names
// TestCase1, TestCase2 and so on, so that one unit-test program run covers
// the whole package.
package importer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"

	"go.chromium.org/distcovery/internal/discovery"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/module"
	"go.chromium.org/distcovery/internal/testing"
	"go.chromium.org/distcovery/internal/uniquename"
)

const (
	// AllAlias is the alias of the synthetic module covering the whole tree.
	AllAlias = "*"

	// File is the File of every synthetic module.
	File = "<distcovery>"

	localPrefix = "test_module_"
	casePrefix  = "TestCase"
)

// Import is a single import of a synthetic module.
type Import struct {
	// Target is the qualified name of the imported test module.
	Target string
	// Local is the name the imported module is bound to.
	Local string
}

// Source lists the imports of a synthetic module in execution order.
type Source []Import

// String renders s as one "import <target> as <local>" line per import.
func (s Source) String() string {
	var sb strings.Builder
	for _, imp := range s {
		fmt.Fprintf(&sb, "import %s as %s\n", imp.Target, imp.Local)
	}
	return sb.String()
}

// Importer is a module.Finder and module.Loader serving synthetic modules.
type Importer struct {
	mods    *module.Registry
	aliases map[string]string
	sources map[string]Source
}

// New builds synthetic modules for root and every package below it. Names
// are drawn from gen; an *uniquename.ExhaustedError is returned if gen runs
// out of attempts.
func New(root *discovery.Package, mods *module.Registry, gen *uniquename.Generator) (*Importer, error) {
	imp := &Importer{
		mods:    mods,
		aliases: make(map[string]string),
		sources: make(map[string]Source),
	}
	if err := imp.add(AllAlias, root, gen); err != nil {
		return nil, err
	}
	for _, pkg := range root.PackagesBelow() {
		if err := imp.add(pkg.Alias(), pkg, gen); err != nil {
			return nil, err
		}
	}
	return imp, nil
}

func (imp *Importer) add(alias string, pkg *discovery.Package, gen *uniquename.Generator) error {
	name, err := gen.New()
	if err != nil {
		return err
	}
	var src Source
	for i, m := range pkg.ModulesBelow() {
		src = append(src, Import{
			Target: m.QualifiedName(),
			Local:  fmt.Sprintf("%s%d", localPrefix, i+1),
		})
	}
	imp.aliases[alias] = name
	imp.sources[name] = src
	return nil
}

// Aliases returns a copy of the alias to synthetic name mapping. The whole
// tree is keyed by AllAlias.
func (imp *Importer) Aliases() map[string]string {
	return maps.Clone(imp.aliases)
}

// Sources returns a copy of the synthetic name to source mapping.
func (imp *Importer) Sources() map[string]Source {
	m := make(map[string]Source, len(imp.sources))
	for k, v := range imp.sources {
		m[k] = append(Source(nil), v...)
	}
	return m
}

// Alias returns the synthetic module name of alias.
func (imp *Importer) Alias(alias string) (string, bool) {
	name, ok := imp.aliases[alias]
	return name, ok
}

// FindModule claims synthetic module names.
func (imp *Importer) FindModule(name string) module.Loader {
	if _, ok := imp.sources[name]; !ok {
		return nil
	}
	return imp
}

// LoadModule returns the synthetic module called name, importing its test
// modules on the first call. A failed load leaves nothing behind in the
// module registry and returns the import error unchanged.
func (imp *Importer) LoadModule(ctx context.Context, name string) (*module.Module, error) {
	if m, ok := imp.mods.Lookup(name); ok {
		return m, nil
	}
	src, ok := imp.sources[name]
	if !ok {
		return nil, &module.NotFoundError{Name: name}
	}

	m := module.New(name, imp)
	m.File = File
	m.Package = name
	imp.mods.Add(m)

	for _, i := range src {
		sub, err := imp.mods.Import(ctx, i.Target)
		if err != nil {
			imp.mods.Remove(name)
			return nil, err
		}
		m.Namespace.Bind(i.Local, sub)
	}

	n := 0
	for _, item := range m.Namespace.Items() {
		sub, ok := item.Value.(*module.Module)
		if !ok || !strings.HasPrefix(item.Name, localPrefix) {
			continue
		}
		for _, subItem := range sub.Namespace.Items() {
			if c, ok := subItem.Value.(*testing.Case); ok {
				n++
				m.Namespace.Bind(fmt.Sprintf("%s%d", casePrefix, n), c)
			}
		}
	}
	logging.Debugf(ctx, "Loaded synthetic module %s with %d module(s) and %d case(s)", name, len(src), n)
	return m, nil
}

// Install adds imp to the finders of its module registry. Call the returned
// function to remove it.
func (imp *Importer) Install() (remove func()) {
	return imp.mods.InstallFinder(imp)
}
