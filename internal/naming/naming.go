// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package naming recognizes test package and test module names.
//
// A test package is a directory named <prefix><token>; a test module is a file
// named <prefix><token><extension>, where token consists of one or more ASCII
// letters, digits and underscores. Whether a directory really is a package
// (it must hold the marker file) is decided by the caller.
package naming

import (
	"fmt"
	"regexp"
	"strings"

	"go.chromium.org/distcovery/errors"
)

const tokenRegexp = `([a-zA-Z0-9_]+)`

// Submatch indices shared by both patterns.
const (
	nameGroup  = 1
	aliasGroup = 2
)

// Default is the convention used by Go test bundles: test_*.go modules inside
// test_* directories that contain a doc.go file.
var Default = MustNew("test_", ".go", "doc.go")

// Convention is a compiled naming convention.
type Convention struct {
	Prefix    string
	Extension string
	Marker    string

	pkg *regexp.Regexp
	mod *regexp.Regexp
}

// Match is the result of a successful match.
type Match struct {
	// Alias is the name with the prefix (and extension) stripped.
	Alias string
	// Name is the name with the prefix kept and the extension stripped.
	Name string
}

// New compiles a convention. prefix must be non-empty and ext must start with
// a dot. marker is the file name that turns a directory into a package.
func New(prefix, ext, marker string) (*Convention, error) {
	if prefix == "" {
		return nil, errors.New("empty test name prefix")
	}
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return nil, errors.Errorf("test module extension %q must start with a dot", ext)
	}
	if marker == "" || strings.ContainsAny(marker, `/\`) {
		return nil, errors.Errorf("invalid package marker file name %q", marker)
	}
	name := fmt.Sprintf("(%s%s)", regexp.QuoteMeta(prefix), tokenRegexp)
	pkg, err := regexp.Compile("^" + name + "$")
	if err != nil {
		return nil, errors.Wrap(err, "bad package pattern")
	}
	mod, err := regexp.Compile("^" + name + regexp.QuoteMeta(ext) + "$")
	if err != nil {
		return nil, errors.Wrap(err, "bad module pattern")
	}
	return &Convention{Prefix: prefix, Extension: ext, Marker: marker, pkg: pkg, mod: mod}, nil
}

// MustNew is similar to New but panics on error.
func MustNew(prefix, ext, marker string) *Convention {
	c, err := New(prefix, ext, marker)
	if err != nil {
		panic(err)
	}
	return c
}

// MatchPackage reports whether name looks like a test package directory.
func (c *Convention) MatchPackage(name string) (Match, bool) {
	return match(c.pkg, name)
}

// MatchModule reports whether name looks like a test module file.
func (c *Convention) MatchModule(name string) (Match, bool) {
	return match(c.mod, name)
}

// ModuleGlob returns a shell-style description of module names, e.g. "test_*.go".
func (c *Convention) ModuleGlob() string {
	return c.Prefix + "*" + c.Extension
}

// PackageGlob returns a shell-style description of package names, e.g. "test_*".
func (c *Convention) PackageGlob() string {
	return c.Prefix + "*"
}

func match(re *regexp.Regexp, name string) (Match, bool) {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return Match{}, false
	}
	return Match{Alias: m[aliasGroup], Name: m[nameGroup]}, true
}
