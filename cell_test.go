// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng_test

import (
	"testing"

	"github.com/db47h/trng"
)

// cellCircuit wires a single cell to variable inputs and probed outputs.
type cellCircuit struct {
	c            *trng.Circuit
	en, eci, rst bool
	out, eco     bool
}

func newCellCircuit(t *testing.T, src trng.Source) *cellCircuit {
	t.Helper()
	cc := &cellCircuit{}
	c, err := trng.NewCircuit(0,
		trng.Input(func() bool { return cc.en })("out=en"),
		trng.Input(func() bool { return cc.eci })("out=eci"),
		trng.Input(func() bool { return cc.rst })("out=rst"),
		trng.Cell(src, "en=en, eci=eci, rst=rst, out=out, eco=eco"),
		trng.Output(func(b bool) { cc.out = b })("in=out"),
		trng.Output(func(b bool) { cc.eco = b })("in=eco"),
	)
	if err != nil {
		t.Fatal(err)
	}
	cc.c = c
	return cc
}

func TestCell_enableChainDelay(t *testing.T) {
	for _, length := range []int{1, 5, 7} {
		src, err := trng.NewFallbackSource(length)
		if err != nil {
			t.Fatal(err)
		}
		cc := newCellCircuit(t, src)

		cc.en, cc.eci = true, true
		rise := -1
		for i := 0; i <= length+4; i++ {
			cc.c.TickTock()
			if cc.eco {
				rise = i
				break
			}
		}
		// the chain input, set before cycle 0, is first latched in cycle 1
		// and takes length cycles to traverse the shift register.
		if rise != length {
			t.Errorf("length %d: eco asserted at cycle %d, expected %d", length, rise, length)
		}

		// de-asserting the chain input drains the chain at the same rate.
		cc.eci = false
		fall := -1
		for i := 0; i <= length+4; i++ {
			cc.c.TickTock()
			if !cc.eco {
				fall = i
				break
			}
		}
		if fall != length {
			t.Errorf("length %d: eco released at cycle %d, expected %d", length, fall, length)
		}
	}
}

func TestCell_disabledOutput(t *testing.T) {
	src, err := trng.NewFallbackSource(5)
	if err != nil {
		t.Fatal(err)
	}
	cc := newCellCircuit(t, src)

	// global enable low: the source holds at zero, so the synchronized
	// output must stay low no matter how long we run.
	cc.eci = true
	for i := 0; i < 20; i++ {
		cc.c.TickTock()
		if cc.out {
			t.Fatal("cell output high while disabled")
		}
	}

	// enabled, the fallback source starts emitting within a few cycles.
	cc.en = true
	high := false
	for i := 0; i < 20 && !high; i++ {
		cc.c.TickTock()
		high = cc.out
	}
	if !high {
		t.Fatal("cell output stuck low while enabled")
	}
}

func TestCell_reset(t *testing.T) {
	src, err := trng.NewFallbackSource(3)
	if err != nil {
		t.Fatal(err)
	}
	cc := newCellCircuit(t, src)

	cc.en, cc.eci = true, true
	for i := 0; i < 10; i++ {
		cc.c.TickTock()
	}
	if !cc.eco {
		t.Fatal("expected chain fully enabled")
	}

	// reset clears chain and synchronizer within the same cycle,
	// regardless of enable.
	cc.rst = true
	cc.c.TickTock()
	if cc.eco || cc.out {
		t.Fatal("expected all outputs low under reset")
	}

	// release: the cascade restarts from the beginning.
	cc.rst = false
	rise := -1
	for i := 0; i < 10; i++ {
		cc.c.TickTock()
		if cc.eco {
			rise = i
			break
		}
	}
	if rise != src.Len() {
		t.Errorf("eco re-asserted at cycle %d, expected %d", rise, src.Len())
	}
}
