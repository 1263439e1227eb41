// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package module implements a small registry of named, loadable modules.
//
// A Registry plays the role of a process-wide module cache plus an ordered
// list of finders consulted on cache misses. Registries are created and
// owned explicitly; nothing in this package is global.
package module

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Namespace is an insertion-ordered set of name bindings.
type Namespace struct {
	names  []string
	values map[string]interface{}
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{values: make(map[string]interface{})}
}

// Bind binds name to v. Rebinding an existing name keeps its position.
func (ns *Namespace) Bind(name string, v interface{}) {
	if _, ok := ns.values[name]; !ok {
		ns.names = append(ns.names, name)
	}
	ns.values[name] = v
}

// Lookup returns the value bound to name.
func (ns *Namespace) Lookup(name string) (interface{}, bool) {
	v, ok := ns.values[name]
	return v, ok
}

// Names returns bound names in binding order.
func (ns *Namespace) Names() []string {
	return append([]string(nil), ns.names...)
}

// Item is a single binding of a Namespace.
type Item struct {
	Name  string
	Value interface{}
}

// Items returns all bindings in binding order.
func (ns *Namespace) Items() []Item {
	items := make([]Item, 0, len(ns.names))
	for _, n := range ns.names {
		items = append(items, Item{Name: n, Value: ns.values[n]})
	}
	return items
}

// Len returns the number of bindings.
func (ns *Namespace) Len() int {
	return len(ns.names)
}

// Module is a loaded module.
type Module struct {
	// Name is the dotted name the module is registered under.
	Name string
	// File describes where the module came from.
	File string
	// SearchPath is non-nil for modules that may contain submodules.
	SearchPath []string
	// Loader is the loader that produced the module.
	Loader Loader
	// Package is the name of the package the module belongs to.
	Package string
	// Namespace holds the module's top-level bindings.
	Namespace *Namespace
}

// New returns a module with an empty namespace.
func New(name string, loader Loader) *Module {
	return &Module{Name: name, Loader: loader, Namespace: NewNamespace()}
}

// Finder decides whether it can provide a module.
type Finder interface {
	// FindModule returns a loader for name, or nil to decline.
	FindModule(name string) Loader
}

// Loader creates and executes modules. Implementations must register the
// module in the registry before running any code that may import it again,
// and must remove it on failure.
type Loader interface {
	LoadModule(ctx context.Context, name string) (*Module, error)
}

// NotFoundError is returned by Import when no finder claims a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no module named %q", e.Name)
}

// Registry caches loaded modules and holds the finders consulted on misses.
// It is safe for concurrent use. Concurrent imports of the same uncached
// name share a single load.
type Registry struct {
	mu      sync.Mutex
	modules map[string]*Module
	finders []*finderEntry
	loads   singleflight.Group
}

type finderEntry struct {
	f Finder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Lookup returns the cached module called name.
func (r *Registry) Lookup(name string) (*Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[name]
	return m, ok
}

// Add caches m under m.Name, replacing any previous entry.
func (r *Registry) Add(m *Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[m.Name] = m
}

// Remove drops the module called name from the cache.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, name)
}

// Len returns the number of cached modules.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.modules)
}

// InstallFinder appends f to the finder list. The returned function removes
// it again and may be called more than once.
func (r *Registry) InstallFinder(f Finder) (remove func()) {
	e := &finderEntry{f}
	r.mu.Lock()
	r.finders = append(r.finders, e)
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, x := range r.finders {
			if x == e {
				r.finders = append(r.finders[:i:i], r.finders[i+1:]...)
				return
			}
		}
	}
}

// Import returns the module called name, loading it through the first
// finder that claims it if it is not cached yet.
//
// A loader importing the module it is loading must have added it to the
// registry first; otherwise the nested import waits for itself.
func (r *Registry) Import(ctx context.Context, name string) (*Module, error) {
	if m, ok := r.Lookup(name); ok {
		return m, nil
	}
	v, err, _ := r.loads.Do(name, func() (interface{}, error) {
		return r.load(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Module), nil
}

func (r *Registry) load(ctx context.Context, name string) (*Module, error) {
	if m, ok := r.Lookup(name); ok {
		return m, nil
	}
	r.mu.Lock()
	finders := append([]*finderEntry(nil), r.finders...)
	r.mu.Unlock()
	for _, e := range finders {
		if l := e.f.FindModule(name); l != nil {
			return l.LoadModule(ctx, name)
		}
	}
	return nil, &NotFoundError{Name: name}
}
