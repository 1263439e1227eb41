// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config holds the settings of a test bundle.
//
// Settings come from an optional YAML file and may be overridden by command
// line flags:
//
//	test_root: test
//	prefix: test_
//	extension: .go
//	marker: doc.go
//	name_attempts: 10
//	name_digits: 15
//	verbosity: 1
//	coverage:
//	  enabled: true
//	  dir: /tmp/cover
//	  packages: [example.com/project/...]
package config

import (
	"flag"
	"os"

	"gopkg.in/yaml.v2"

	"go.chromium.org/distcovery/errors"
	"go.chromium.org/distcovery/internal/command"
	"go.chromium.org/distcovery/internal/naming"
	"go.chromium.org/distcovery/internal/uniquename"
)

// DefaultFile is the configuration file read from the working directory.
const DefaultFile = "distcovery.yaml"

// Coverage holds coverage settings.
type Coverage struct {
	Enabled  bool     `yaml:"enabled"`
	Dir      string   `yaml:"dir"`
	Packages []string `yaml:"packages"`
}

// Config holds bundle settings.
type Config struct {
	// TestRoot is the directory holding test modules and packages. It must
	// be inside the working directory.
	TestRoot string `yaml:"test_root"`
	// Prefix, Extension and Marker define the naming convention.
	Prefix    string `yaml:"prefix"`
	Extension string `yaml:"extension"`
	Marker    string `yaml:"marker"`
	// NameAttempts and NameDigits configure synthetic module names.
	NameAttempts int `yaml:"name_attempts"`
	NameDigits   int `yaml:"name_digits"`
	// Verbosity of the unit-test program, 0 to 2.
	Verbosity int      `yaml:"verbosity"`
	Coverage  Coverage `yaml:"coverage"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		TestRoot:     "test",
		Prefix:       naming.Default.Prefix,
		Extension:    naming.Default.Extension,
		Marker:       naming.Default.Marker,
		NameAttempts: uniquename.DefaultAttempts,
		NameDigits:   uniquename.DefaultDigits,
		Verbosity:    1,
	}
}

// Load returns the default configuration overridden by the YAML file at
// path. A missing file is not an error unless mustExist is true.
func Load(path string, mustExist bool) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) && !mustExist {
		return cfg, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, nil
}

// SetFlags adds flags overriding c to f. Current values of c are used as
// flag defaults, so call it after Load.
func (c *Config) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.TestRoot, "testroot", c.TestRoot, "directory containing test modules")
	f.StringVar(&c.Prefix, "prefix", c.Prefix, "name prefix of test modules and packages")
	f.StringVar(&c.Extension, "ext", c.Extension, "file extension of test modules")
	f.StringVar(&c.Marker, "marker", c.Marker, "file marking a directory as test package")
	f.IntVar(&c.Verbosity, "verbosity", c.Verbosity, "unit-test output verbosity (0-2)")
	f.BoolVar(&c.Coverage.Enabled, "coverage", c.Coverage.Enabled, "collect code coverage")
	f.StringVar(&c.Coverage.Dir, "coveragedir", c.Coverage.Dir, "directory receiving coverage data, temporary if empty")
	f.Var(command.NewListFlag(",", func(v []string) { c.Coverage.Packages = v }, c.Coverage.Packages),
		"coveragepkg", "comma-separated import path patterns to report coverage for")
}

// Validate checks c and returns its naming convention.
func (c *Config) Validate() (*naming.Convention, error) {
	if c.TestRoot == "" {
		return nil, errors.New("test root not set")
	}
	if c.NameAttempts < 1 {
		return nil, errors.Errorf("name_attempts must be positive; got %d", c.NameAttempts)
	}
	if c.NameDigits < 1 || c.NameDigits > 18 {
		return nil, errors.Errorf("name_digits must be in [1, 18]; got %d", c.NameDigits)
	}
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return nil, errors.Errorf("verbosity must be in [0, 2]; got %d", c.Verbosity)
	}
	conv, err := naming.New(c.Prefix, c.Extension, c.Marker)
	if err != nil {
		return nil, errors.Wrap(err, "bad naming convention")
	}
	return conv, nil
}
