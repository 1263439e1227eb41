// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package discovery

import (
	"strings"
)

// Node holds the names shared by test modules and test packages.
//
// QualifiedPath and AliasPath always have the same length; both are empty for
// the walk root.
type Node struct {
	// Base lists the directories from the current directory down to the walk
	// root. It is the same for every node of one walk.
	Base []string
	// QualifiedPath holds the importable name segments, e.g. ["test_sub", "test_sub_first"].
	QualifiedPath []string
	// AliasPath holds the user-facing segments, e.g. ["sub", "sub_first"].
	AliasPath []string
	// Path is the location of the node on the file system.
	Path string
}

// Alias returns the dotted alias, e.g. "sub.sub_first".
func (n *Node) Alias() string {
	return strings.Join(n.AliasPath, ".")
}

// QualifiedName returns the dotted name the module is registered under,
// e.g. "test_sub.test_sub_first".
func (n *Node) QualifiedName() string {
	return strings.Join(n.QualifiedPath, ".")
}

// FullName returns QualifiedName prefixed with the base, e.g.
// "test.test_sub.test_sub_first" for a walk rooted at "test".
func (n *Node) FullName() string {
	return strings.Join(append(append([]string(nil), n.Base...), n.QualifiedPath...), ".")
}

func (n *Node) info() *Node { return n }

// Importable is a *Module or a *Package.
type Importable interface {
	Alias() string
	QualifiedName() string
	FullName() string
	info() *Node
}

// Module is a test module.
type Module struct {
	Node
}

// Package is a test package, or the walk root.
type Package struct {
	Node

	// Modules lists direct child modules in discovery order.
	Modules []*Module
	// Packages lists direct child packages in discovery order.
	Packages []*Package
	// Content maps the dotted alias of every descendant to the descendant.
	Content map[string]Importable
}

func newPackage(n Node) *Package {
	return &Package{Node: n, Content: make(map[string]Importable)}
}

// child returns the node of an entry found in the directory of n.
func (n *Node) child(path, alias, name string) Node {
	return Node{
		Base:          n.Base,
		QualifiedPath: append(append([]string(nil), n.QualifiedPath...), name),
		AliasPath:     append(append([]string(nil), n.AliasPath...), alias),
		Path:          path,
	}
}

// Entry is a line of Package.Enumerate.
type Entry struct {
	IsPackage bool
	Level     int
	Alias     string
}

// Enumerate lists the tree below p. At every level modules come first, then
// each package followed by its own entries one level deeper.
func (p *Package) Enumerate(level int) []Entry {
	var ents []Entry
	for _, m := range p.Modules {
		ents = append(ents, Entry{IsPackage: false, Level: level, Alias: m.Alias()})
	}
	for _, sub := range p.Packages {
		ents = append(ents, Entry{IsPackage: true, Level: level, Alias: sub.Alias()})
		ents = append(ents, sub.Enumerate(level+1)...)
	}
	return ents
}

// ModulesBelow returns every module contained in p, at any depth, sorted by
// alias.
func (p *Package) ModulesBelow() []*Module {
	var mods []*Module
	for _, alias := range p.Aliases() {
		if m, ok := p.Content[alias].(*Module); ok {
			mods = append(mods, m)
		}
	}
	return mods
}

// PackagesBelow returns every package contained in p, at any depth, sorted by
// alias.
func (p *Package) PackagesBelow() []*Package {
	var pkgs []*Package
	for _, alias := range p.Aliases() {
		if sub, ok := p.Content[alias].(*Package); ok {
			pkgs = append(pkgs, sub)
		}
	}
	return pkgs
}
