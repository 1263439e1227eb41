// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uniquename

import (
	"regexp"
	"testing"

	"go.chromium.org/distcovery/errors"
)

var nameRegexp = regexp.MustCompile(`^X_\d+$`)

func TestRandom(t *testing.T) {
	g := New(DefaultAttempts, DefaultDigits)
	name := g.random()
	if !nameRegexp.MatchString(name) {
		t.Errorf("random() = %q; want match of %q", name, nameRegexp)
	}
	if got, want := len(name), len("X_")+DefaultDigits; got != want {
		t.Errorf("len(random()) = %d; want %d", got, want)
	}
	if g.Len() != 0 {
		t.Errorf("random() recorded a name; Len() = %d", g.Len())
	}
}

func TestZeroPadding(t *testing.T) {
	g := New(1, 4)
	g.draw = func(int64) int64 { return 7 }
	name, err := g.New()
	if err != nil {
		t.Fatal("New failed: ", err)
	}
	if name != "X_0007" {
		t.Errorf("New() = %q; want %q", name, "X_0007")
	}
}

func TestNewUnique(t *testing.T) {
	g := New(10000, 2)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		name, err := g.New()
		if err != nil {
			t.Fatalf("New failed after %d names: %v", i, err)
		}
		if _, ok := seen[name]; ok {
			t.Fatalf("New returned %q twice", name)
		}
		seen[name] = struct{}{}
	}
	if g.Len() != 100 {
		t.Errorf("Len() = %d; want 100", g.Len())
	}
}

func TestNewExhausted(t *testing.T) {
	g := New(1, 1)
	var err error
	for i := 0; i < 11 && err == nil; i++ {
		_, err = g.New()
	}
	var ee *ExhaustedError
	if !errors.As(err, &ee) {
		t.Fatalf("New returned %v; want ExhaustedError", err)
	}
	if ee.Limit != 1 || ee.Length != 1 {
		t.Errorf("ExhaustedError = %+v; want Limit=1 Length=1", ee)
	}
	const msg = "Couldn't generate unique name with 1 digit in 1 attempt."
	if err.Error() != msg {
		t.Errorf("Error() = %q; want %q", err.Error(), msg)
	}
}

func TestNewRetriesCollisions(t *testing.T) {
	g := New(3, 2)
	seq := []int64{5, 5, 5, 6}
	g.draw = func(int64) int64 {
		v := seq[0]
		seq = seq[1:]
		return v
	}
	if name, err := g.New(); err != nil || name != "X_05" {
		t.Fatalf("New() = (%q, %v); want X_05", name, err)
	}
	// Two collisions, then a fresh value on the third and last attempt.
	if name, err := g.New(); err != nil || name != "X_06" {
		t.Fatalf("New() = (%q, %v); want X_06", name, err)
	}
}

func TestClamping(t *testing.T) {
	g := New(0, 0)
	if g.limit != 1 || g.length != 1 {
		t.Errorf("New(0, 0) = limit %d, length %d; want 1, 1", g.limit, g.length)
	}
	g = New(5, 40)
	if g.length != maxDigits {
		t.Errorf("New(5, 40) length = %d; want %d", g.length, maxDigits)
	}
	if msg := (&ExhaustedError{Limit: 10, Length: 2}).Error(); msg != "Couldn't generate unique name with 2 digits in 10 attempts." {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestNewExhaustedLargerSpace(t *testing.T) {
	g := New(10, 2)
	var err error
	for i := 0; i < 101 && err == nil; i++ {
		_, err = g.New()
	}
	var ee *ExhaustedError
	if !errors.As(err, &ee) {
		t.Fatalf("New returned %v after 101 calls; want ExhaustedError", err)
	}
}
