// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

import "github.com/pkg/errors"

// A Source produces one raw bit per clock cycle. It is the pluggable bit
// generator wrapped by a Cell.
//
// Advance computes the source's next state from its current state, once
// per clock cycle. stageEn holds the per stage enable bits of the cell's
// enable shift register; sources that model a free-running ring honor it,
// purely sequential sources may ignore it. When enabled is false the
// source must return to its all-zero state.
//
type Source interface {
	// Len returns the stage count, fixed at construction.
	Len() int
	// Reset forces every stage to zero.
	Reset()
	// Advance moves the source one clock cycle forward.
	Advance(enabled bool, stageEn []bool)
	// Bit returns the current value of the top stage.
	Bit() bool
}

// checkLength rejects stage counts for which a ring of inverters does not
// oscillate and the fallback recurrence degenerates.
//
func checkLength(length int) error {
	if length <= 0 || length&1 == 0 {
		return errors.Errorf("invalid source length %d: must be positive and odd", length)
	}
	return nil
}

// A RingSource models a free-running ring oscillator: length inverter
// stages in a loop, where stage k inverts stage k-1 and stage 0 inverts
// the top stage. A stage only updates when its individual enable bit is
// set; the staggered per stage enabling is what keeps replicated rings
// from being collapsed into one equivalent circuit by synthesis, and it
// is also what produces the startup ramp.
//
// The simulated ring is deterministic. On a physical fabric the same
// structure free-runs on gate delays and accumulates jitter; that part
// cannot be simulated and is not a property of this logic.
//
type RingSource struct {
	stages []bool
}

// NewRingSource returns a ring oscillator model with the given number of
// stages. length must be positive and odd, or an even number of inversions
// would make the ring settle instead of oscillate.
//
func NewRingSource(length int) (*RingSource, error) {
	if err := checkLength(length); err != nil {
		return nil, err
	}
	return &RingSource{stages: make([]bool, length)}, nil
}

// Len returns the stage count.
//
func (r *RingSource) Len() int { return len(r.stages) }

// Bit returns the current value of the top stage.
//
func (r *RingSource) Bit() bool { return r.stages[len(r.stages)-1] }

// Reset forces every stage to zero.
//
func (r *RingSource) Reset() {
	for i := range r.stages {
		r.stages[i] = false
	}
}

// Advance updates enabled stages to the inverse of their predecessor's
// current value. Disabled stages hold. When enabled is false the whole
// ring resets to zero.
//
func (r *RingSource) Advance(enabled bool, stageEn []bool) {
	if !enabled {
		r.Reset()
		return
	}
	s := r.stages
	top := s[len(s)-1]
	// in place, from the top down: s[k] reads s[k-1] before it is rewritten
	for k := len(s) - 1; k > 0; k-- {
		if stageEn[k] {
			s[k] = !s[k-1]
		}
	}
	if stageEn[0] {
		s[0] = !top
	}
}

// A FallbackSource is the deterministic stand-in for a RingSource: a shift
// register with feedback bit NOT(top XOR stage 0), advancing on every
// enabled clock cycle. It exists for repeatable simulation and testing
// only and must never serve as a production entropy source.
//
type FallbackSource struct {
	stages []bool
}

// NewFallbackSource returns a deterministic bit source with the given
// number of stages. length must be positive and odd, matching the ring
// source it stands in for.
//
func NewFallbackSource(length int) (*FallbackSource, error) {
	if err := checkLength(length); err != nil {
		return nil, err
	}
	return &FallbackSource{stages: make([]bool, length)}, nil
}

// Len returns the stage count.
//
func (f *FallbackSource) Len() int { return len(f.stages) }

// Bit returns the current value of the top stage.
//
func (f *FallbackSource) Bit() bool { return f.stages[len(f.stages)-1] }

// Reset forces every stage to zero.
//
func (f *FallbackSource) Reset() {
	for i := range f.stages {
		f.stages[i] = false
	}
}

// Advance shifts the register up by one stage and feeds back
// NOT(top XOR stage 0). The per stage enables are ignored: the fallback
// recurrence ramps up with the cell's enable chain only through the time
// its wrapping cell takes to pass the chain on. When enabled is false the
// register resets to zero; the all-zero state is not absorbing since the
// feedback then shifts in a one.
//
func (f *FallbackSource) Advance(enabled bool, _ []bool) {
	if !enabled {
		f.Reset()
		return
	}
	s := f.stages
	fb := !(s[len(s)-1] != s[0])
	for k := len(s) - 1; k > 0; k-- {
		s[k] = s[k-1]
	}
	s[0] = fb
}
