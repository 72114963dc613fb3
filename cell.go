// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

import "strconv"

// Cell returns an entropy cell part wrapping the given bit source.
//
//	Inputs: en, eci, rst
//	Outputs: out, eco
//
// en is the global enable. eci is the enable chain input: it shifts into a
// src.Len() bit enable shift register whose bits individually enable the
// source's stages, so full activation of a cell is staggered over
// src.Len() cycles. eco, the top bit of that register, seeds the next
// cell's chain exactly src.Len() cycles after eci asserts; de-assertion
// drains the chain the same way.
//
// out is the source's top bit taken through a 2-stage synchronizer. On
// real hardware the synchronizer isolates the clocked pipeline from the
// free-running ring; it is kept in simulation so that timings match.
//
// rst is an asynchronous level reset: while high, source, chain and
// synchronizer hold at zero regardless of clock phase.
//
func Cell(src Source, w string) Part {
	n := src.Len()
	return (&PartSpec{
		Name:    "CELL" + strconv.Itoa(n),
		Inputs:  IO("en, eci, rst"),
		Outputs: IO("out, eco"),
		Mount: func(s *Socket) []Component {
			en, eci, rst := s.Pin(pEn), s.Pin(pECI), s.Pin(pRst)
			out, eco := s.Pin(pOut), s.Pin(pECO)
			chain := make([]bool, n)
			var sync0, sync1 bool
			return []Component{
				func(c *Circuit) {
					if c.Get(rst) {
						src.Reset()
						for i := range chain {
							chain[i] = false
						}
						sync0, sync1 = false, false
					} else if c.AtTick() {
						// next state from current state: sample the top bit,
						// advance the source against the current chain, then
						// shift the chain.
						sync1, sync0 = sync0, src.Bit()
						src.Advance(c.Get(en), chain)
						for k := n - 1; k > 0; k-- {
							chain[k] = chain[k-1]
						}
						chain[0] = c.Get(eci)
					}
					c.Set(out, sync1)
					c.Set(eco, chain[n-1])
				}}
		}}).NewPart(w)
}
