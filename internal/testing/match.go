// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"regexp"
	"strings"
	"unicode"

	"go.chromium.org/distcovery/errors"
)

// Matcher selects tests by id using patterns that may contain '*'
// wildcards. A pattern without a wildcard must match an id exactly.
type Matcher struct {
	res []*regexp.Regexp
}

// NewMatcher returns a matcher for pats. An empty list matches every test.
func NewMatcher(pats []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range pats {
		re, err := compileGlob(p)
		if err != nil {
			return nil, err
		}
		m.res = append(m.res, re)
	}
	return m, nil
}

// Match reports whether id is selected.
func (m *Matcher) Match(id string) bool {
	if len(m.res) == 0 {
		return true
	}
	for _, re := range m.res {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}

// compileGlob converts a wildcard pattern into an anchored regexp.
func compileGlob(p string) (*regexp.Regexp, error) {
	if p == "" {
		return nil, errors.New("empty pattern")
	}
	for _, ch := range p {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '.' && ch != '*' && ch != '_' {
			return nil, errors.Errorf("bad pattern %q: invalid character %q", p, ch)
		}
	}
	p = strings.Replace(p, ".", "\\.", -1)
	p = strings.Replace(p, "*", ".*", -1)
	re, err := regexp.Compile("^" + p + "$")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile %q", p)
	}
	return re, nil
}
