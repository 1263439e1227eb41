// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/logging"
	"go.chromium.org/distcovery/internal/module"
)

var moduleNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ModuleSpec describes a test module.
type ModuleSpec struct {
	// Name is the dotted name of the module relative to the test root,
	// e.g. "test_sub.test_sub_first".
	Name string
	// Init, if non-nil, runs every time the module is loaded, after its
	// cases are bound. An error aborts the load.
	Init func(ctx context.Context) error
	// Cases lists the test cases defined by the module.
	Cases []*Case

	file string // source file that registered the module
}

// Registry holds registered test modules.
type Registry struct {
	mu    sync.Mutex
	specs map[string]*ModuleSpec
	order []string
	execs map[string]int
	errs  []error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]*ModuleSpec),
		execs: make(map[string]int),
	}
}

// AddModule registers m. Missing fields are filled where possible.
func (r *Registry) AddModule(m *ModuleSpec) error {
	if !moduleNameRegexp.MatchString(m.Name) {
		return errors.Errorf("invalid module name %q", m.Name)
	}
	caseNames := make(map[string]struct{})
	for _, c := range m.Cases {
		if err := c.validate(); err != nil {
			return errors.Wrapf(err, "module %s", m.Name)
		}
		if _, ok := caseNames[c.Name]; ok {
			return errors.Errorf("module %s has duplicate case %s", m.Name, c.Name)
		}
		caseNames[c.Name] = struct{}{}
	}
	if m.file == "" {
		m.file = callerFile()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.specs[m.Name]; ok {
		return errors.Errorf("module %s already registered", m.Name)
	}
	for _, c := range m.Cases {
		c.module = m.Name
	}
	r.specs[m.Name] = m
	r.order = append(r.order, m.Name)
	return nil
}

// RecordError records an error encountered while registering modules. The
// bundle refuses to run when errors were recorded.
func (r *Registry) RecordError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// Errors returns errors recorded by RecordError.
func (r *Registry) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// Modules returns the names of registered modules in registration order.
func (r *Registry) Modules() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Lookup returns the module registered as name.
func (r *Registry) Lookup(name string) (*ModuleSpec, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.specs[name]
	return m, ok
}

// Executions returns how many times the module called name was loaded.
func (r *Registry) Executions(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.execs[name]
}

// Install makes registered modules importable through mods and returns a
// function removing them again.
func (r *Registry) Install(mods *module.Registry) (remove func()) {
	return mods.InstallFinder(&source{reg: r, mods: mods})
}

// source is the module.Finder and module.Loader of a Registry bound to a
// module registry.
type source struct {
	reg  *Registry
	mods *module.Registry
}

// FindModule claims registered module names.
func (s *source) FindModule(name string) module.Loader {
	if _, ok := s.reg.Lookup(name); !ok {
		return nil
	}
	return s
}

// LoadModule executes the module called name.
func (s *source) LoadModule(ctx context.Context, name string) (*module.Module, error) {
	if m, ok := s.mods.Lookup(name); ok {
		return m, nil
	}
	spec, ok := s.reg.Lookup(name)
	if !ok {
		return nil, &module.NotFoundError{Name: name}
	}

	m := module.New(name, s)
	m.File = spec.file
	if i := strings.LastIndex(name, "."); i >= 0 {
		m.Package = name[:i]
	}
	s.mods.Add(m)

	s.reg.mu.Lock()
	s.reg.execs[name]++
	s.reg.mu.Unlock()

	for _, c := range spec.Cases {
		m.Namespace.Bind(c.Name, c)
	}
	if spec.Init != nil {
		if err := spec.Init(ctx); err != nil {
			s.mods.Remove(name)
			return nil, errors.Wrapf(err, "failed to initialize module %s", name)
		}
	}
	logging.Debugf(ctx, "Loaded test module %s with %d case(s)", name, len(spec.Cases))
	return m, nil
}

// callerFile returns the file of the nearest caller outside the testing
// packages.
func callerFile() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "go.chromium.org/distcovery/internal/testing.") &&
			!strings.HasPrefix(f.Function, "go.chromium.org/distcovery/testing.") {
			return f.File
		}
		if !more {
			return ""
		}
	}
}

var (
	globalRegistry     = NewRegistry()
	globalRegistryLock sync.Mutex
)

// GlobalRegistry returns the registry test modules register themselves to.
func GlobalRegistry() *Registry {
	globalRegistryLock.Lock()
	defer globalRegistryLock.Unlock()
	return globalRegistry
}

// SetGlobalRegistryForTesting temporarily replaces the global registry with
// reg. Call the returned function to restore the original registry.
func SetGlobalRegistryForTesting(reg *Registry) (restore func()) {
	globalRegistryLock.Lock()
	defer globalRegistryLock.Unlock()
	orig := globalRegistry
	globalRegistry = reg
	return func() {
		globalRegistryLock.Lock()
		defer globalRegistryLock.Unlock()
		globalRegistry = orig
	}
}
