// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng_test

import (
	"testing"

	"github.com/db47h/trng"
)

func TestSource_lengths(t *testing.T) {
	td := []struct {
		length int
		ok     bool
	}{
		{-3, false},
		{0, false},
		{2, false},
		{8, false},
		{1, true},
		{3, true},
		{15, true},
	}
	for _, d := range td {
		if _, err := trng.NewRingSource(d.length); (err == nil) != d.ok {
			t.Errorf("NewRingSource(%d): unexpected err = %v", d.length, err)
		}
		if _, err := trng.NewFallbackSource(d.length); (err == nil) != d.ok {
			t.Errorf("NewFallbackSource(%d): unexpected err = %v", d.length, err)
		}
	}
}

// The fallback shift register with feedback NOT(top XOR bit0) walks a
// fixed cycle from the all-zero state. For 3 stages the period is 7.
func TestFallbackSource_sequence(t *testing.T) {
	src, err := trng.NewFallbackSource(3)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{false, false, true, false, true, true, false}
	en := make([]bool, src.Len())
	for rep := 0; rep < 3; rep++ {
		for i, w := range want {
			src.Advance(true, en) // stage enables are ignored
			if src.Bit() != w {
				t.Fatalf("rep %d, advance %d: expected bit %v, got %v", rep, i, w, src.Bit())
			}
		}
	}

	// disabling returns to the all-zero state, restarting the cycle.
	src.Advance(false, en)
	if src.Bit() {
		t.Fatal("expected zero state after disable")
	}
	src.Advance(true, en)
	src.Advance(true, en)
	src.Advance(true, en)
	if !src.Bit() {
		t.Fatal("expected cycle to restart from the all-zero state")
	}
}

func TestRingSource_oscillates(t *testing.T) {
	src, err := trng.NewRingSource(3)
	if err != nil {
		t.Fatal(err)
	}
	en := []bool{true, true, true}
	// all stages updating simultaneously from the all-zero state: the
	// whole ring inverts every cycle, so the top bit toggles.
	for i := 0; i < 10; i++ {
		src.Advance(true, en)
		if want := i&1 == 0; src.Bit() != want {
			t.Fatalf("advance %d: expected %v, got %v", i, want, src.Bit())
		}
	}
	src.Advance(false, en)
	if src.Bit() {
		t.Fatal("expected zero state after disable")
	}
}

func TestRingSource_stagger(t *testing.T) {
	src, err := trng.NewRingSource(3)
	if err != nil {
		t.Fatal(err)
	}
	// only stage 0 enabled: the top stage holds at zero.
	en := []bool{true, false, false}
	for i := 0; i < 5; i++ {
		src.Advance(true, en)
		if src.Bit() {
			t.Fatalf("advance %d: top stage updated while disabled", i)
		}
	}
	// enabling the rest lets the staggered state propagate: the ring is
	// now desynchronized and follows a different walk than a cold start.
	en = []bool{true, true, true}
	want := []bool{true, true, true, false}
	for i, w := range want {
		src.Advance(true, en)
		if src.Bit() != w {
			t.Fatalf("advance %d: expected %v, got %v", i, w, src.Bit())
		}
	}
}
