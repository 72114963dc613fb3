// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config describes a pipeline, fixed at construction.
//
type Config struct {
	// Cells is the number of entropy cells. Must be at least 1.
	Cells int
	// FirstLength is the stage count of cell 0; cell i uses
	// FirstLength + 2*i so that every cell has a distinct odd length and
	// the rings free-run at mutually incoherent periods. Must be positive
	// and odd.
	FirstLength int
	// Fallback selects the deterministic fallback source over the ring
	// oscillator model for every cell. Simulation and testing only.
	Fallback bool
	// NewSource optionally overrides the bit source factory selected by
	// Fallback. The returned source must have Len() == length.
	NewSource func(length int) (Source, error)
}

// maxTicksPerByte bounds how long Read drives the pipeline for a single
// byte before giving up. A healthy source rejects about half of its pairs;
// a degenerate one (constant output) would stall Read forever without this
// guard.
const maxTicksPerByte = 1 << 16

// A Pipeline is a complete bit-conditioning pipeline: entropy cells with
// cascaded enables, XOR combiner, von Neumann extractor and sampling
// controller, assembled into one synchronous circuit.
//
// A Pipeline is not safe for concurrent use.
//
type Pipeline struct {
	c      *Circuit
	reset  bool
	enable bool
	ob     int64
	ordy   bool
	cycles uint64
}

// New builds a pipeline from cfg.
//
// The global enable is pipelined through one flip flop before it seeds
// cell 0's enable chain; each cell's chain output seeds the next cell, and
// the last one arms the extractor, so activation cascades across the
// array. The same delayed enable gates the sampling controller.
//
func New(cfg Config) (*Pipeline, error) {
	if cfg.Cells < 1 {
		return nil, errors.Errorf("invalid cell count %d: must be at least 1", cfg.Cells)
	}
	if err := checkLength(cfg.FirstLength); err != nil {
		return nil, errors.Wrap(err, "cell 0")
	}
	newSource := cfg.NewSource
	if newSource == nil {
		if cfg.Fallback {
			newSource = func(length int) (Source, error) { return NewFallbackSource(length) }
		} else {
			newSource = func(length int) (Source, error) { return NewRingSource(length) }
		}
	}

	p := &Pipeline{}
	parts := []Part{
		Input(func() bool { return p.reset })("out=rst"),
		Input(func() bool { return p.enable })("out=en"),
		DFF("in=en, rst=rst, out=enp"),
	}

	// cell i's chain input is cell i-1's chain output.
	eci := "enp"
	var comb strings.Builder
	for i := 0; i < cfg.Cells; i++ {
		length := cfg.FirstLength + 2*i
		src, err := newSource(length)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", i)
		}
		if src.Len() != length {
			return nil, errors.Errorf("cell %d: source length %d, want %d", i, src.Len(), length)
		}
		out := "c" + strconv.Itoa(i)
		eco := "e" + strconv.Itoa(i)
		parts = append(parts, Cell(src, "en=en, eci="+eci+", rst=rst, out="+out+", eco="+eco))
		if comb.Len() > 0 {
			comb.WriteString(", ")
		}
		comb.WriteString(busPinName(pIn, i) + "=" + out)
		eci = eco
	}

	parts = append(parts,
		XorN(cfg.Cells, comb.String()+", out=raw"),
		Extractor("in=raw, arm="+eci+", rst=rst, out=deb, strobe=dv"),
		Sampler("in=deb, ld=dv, en=enp, rst=rst, out[0..7]=q[0..7], rdy=rdy"),
		OutputN(8, func(v int64) { p.ob = v })("in[0..7]=q[0..7]"),
		Output(func(b bool) { p.ordy = b })("in=rdy"),
	)

	c, err := NewCircuit(0, parts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble pipeline")
	}
	p.c = c
	return p, nil
}

// Tick advances the pipeline by one clock cycle with the given reset and
// enable levels. It returns the output byte and whether it is valid this
// cycle. valid pulses for exactly one cycle per 64 accepted de-biased
// bits; the byte is meaningful only on cycles where valid is true.
//
// reset is level-sensitive and takes effect within the current cycle;
// enable takes effect on the next cycle, matching an external signal
// registered at the pipeline boundary.
//
func (p *Pipeline) Tick(reset, enable bool) (b byte, valid bool) {
	p.reset, p.enable = reset, enable
	p.c.TickTock()
	p.cycles++
	if p.ordy {
		return byte(p.ob), true
	}
	return 0, false
}

// Ticks returns the number of clock cycles run so far.
//
func (p *Pipeline) Ticks() uint64 { return p.cycles }

// Size returns the component count of the underlying circuit.
//
func (p *Pipeline) Size() int { return p.c.Size() }

// Read drives the pipeline with enable high until buf is filled with
// output bytes, implementing io.Reader. It returns an error if the bit
// source starves a batch beyond any plausible rejection rate.
//
func (p *Pipeline) Read(buf []byte) (int, error) {
	for n := range buf {
		var ok bool
		for i := 0; i < maxTicksPerByte; i++ {
			var b byte
			if b, ok = p.Tick(false, true); ok {
				buf[n] = b
				break
			}
		}
		if !ok {
			return n, errors.Errorf("bit source starved: no byte after %d cycles", maxTicksPerByte)
		}
	}
	return len(buf), nil
}
