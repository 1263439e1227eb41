// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package uniquename generates random names that are unique per generator.
//
// Uniqueness is probabilistic in the sense that the generator gives up after
// a bounded number of colliding draws; size the digit count so that the
// number of names needed is far below 10^digits.
package uniquename

import (
	"fmt"
	"math/rand"
)

const (
	// DefaultAttempts is the default number of draws per name.
	DefaultAttempts = 10
	// DefaultDigits is the default number of random digits per name.
	DefaultDigits = 15

	maxDigits = 18 // 10^18 still fits in int64
)

// ExhaustedError is returned when no unused name was drawn within the
// attempt limit.
type ExhaustedError struct {
	Limit  int // attempts made
	Length int // digits per name
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("Couldn't generate unique name with %d digit%s in %d attempt%s.",
		e.Length, plural(e.Length), e.Limit, plural(e.Limit))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Generator issues names of the form "X_" followed by a fixed number of
// zero-padded random digits. It is not safe for concurrent use.
type Generator struct {
	limit  int
	length int
	space  int64
	format string
	names  map[string]struct{}
	draw   func(n int64) int64
}

// New returns a generator making at most limit draws per name, each name
// carrying length digits. Values below 1 are raised to 1 and length is
// capped at 18.
func New(limit, length int) *Generator {
	if limit < 1 {
		limit = 1
	}
	if length < 1 {
		length = 1
	}
	if length > maxDigits {
		length = maxDigits
	}
	space := int64(1)
	for i := 0; i < length; i++ {
		space *= 10
	}
	return &Generator{
		limit:  limit,
		length: length,
		space:  space,
		format: fmt.Sprintf("X_%%0%dd", length),
		names:  make(map[string]struct{}),
		draw:   rand.Int63n,
	}
}

// random returns a random name without checking or recording it.
func (g *Generator) random() string {
	return fmt.Sprintf(g.format, g.draw(g.space))
}

// New returns a name that this generator has never returned before.
func (g *Generator) New() (string, error) {
	for i := 0; i < g.limit; i++ {
		name := g.random()
		if _, ok := g.names[name]; ok {
			continue
		}
		g.names[name] = struct{}{}
		return name, nil
	}
	return "", &ExhaustedError{Limit: g.limit, Length: g.length}
}

// Len returns the number of names issued so far.
func (g *Generator) Len() int {
	return len(g.names)
}
