// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package command

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"go.chromium.org/distcovery/errors"
)

// EnumFlag implements flag.Value accepting one of a fixed set of words.
type EnumFlag struct {
	valid  []string     // accepted values, sorted
	assign func(string) // receives accepted values
	def    string       // default value
}

// NewEnumFlag returns an EnumFlag accepting valid and assigning accepted
// values with assign. def is assigned immediately.
func NewEnumFlag(valid []string, assign func(string), def string) *EnumFlag {
	f := &EnumFlag{append([]string(nil), valid...), assign, def}
	slices.Sort(f.valid)
	if err := f.Set(def); err != nil {
		panic(err)
	}
	return f
}

// Default returns the value assigned when the flag is not given.
func (f *EnumFlag) Default() string { return f.def }

// QuotedValues returns the accepted values quoted and comma-separated.
func (f *EnumFlag) QuotedValues() string {
	qs := make([]string, len(f.valid))
	for i, v := range f.valid {
		qs[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(qs, ", ")
}

func (f *EnumFlag) String() string { return "" }

// Set implements flag.Value.
func (f *EnumFlag) Set(v string) error {
	if !slices.Contains(f.valid, v) {
		return errors.Errorf("must be in %s", f.QuotedValues())
	}
	f.assign(v)
	return nil
}

// ListFlag implements flag.Value for a separated list of words. Words are
// trimmed and empty words dropped.
type ListFlag struct {
	sep    string
	assign func([]string)
	def    []string
}

// NewListFlag returns a ListFlag splitting on sep. def is assigned
// immediately.
func NewListFlag(sep string, assign func([]string), def []string) *ListFlag {
	f := &ListFlag{sep, assign, def}
	assign(append([]string(nil), def...))
	return f
}

func (f *ListFlag) String() string { return strings.Join(f.def, f.sep) }

// Set implements flag.Value.
func (f *ListFlag) Set(v string) error {
	f.assign(SplitList(v, f.sep))
	return nil
}

// SplitList splits s on sep, trims every word and drops empty words.
func SplitList(s, sep string) []string {
	var words []string
	for _, w := range strings.Split(s, sep) {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
