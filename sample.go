// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

// batchSize is the number of accepted de-biased bits folded into one
// output byte.
const batchSize = 64

// Sampler returns the sampling controller: it folds accepted de-biased
// bits into an 8-bit mixing register and emits one byte per batch.
//
//	Inputs: in, ld, en, rst
//	Outputs: out[8], rdy
//
// On every cycle where ld is high, the mixing register shifts left by one
// and the bit entering at the low end is the register's previous top bit
// XOR in. The feedback spreads each accepted bit's influence across all
// eight output positions over successive shifts. After 64 accepted bits
// the register's contents appear on out and rdy pulses for one cycle;
// mixing register and bit count then restart from zero.
//
// While en (the one-cycle-delayed global enable) is low, or while rst is
// high, register, count and outputs hold at zero, so a batch interrupted
// by a disable never leaks into the next one and rdy cannot assert for a
// batch during which the enable dropped.
//
func Sampler(w string) Part {
	return (&PartSpec{
		Name:    "SAMPLER",
		Inputs:  IO("in, ld, en, rst"),
		Outputs: IO("out[8], rdy"),
		Mount: func(s *Socket) []Component {
			in, ld, en, rst := s.Pin(pIn), s.Pin(pLd), s.Pin(pEn), s.Pin(pRst)
			out, rdy := s.Bus(pOut, 8), s.Pin(pRdy)
			var (
				mix   uint8
				count int
				ob    uint8
				ordy  bool
			)
			return []Component{
				func(c *Circuit) {
					if c.Get(rst) {
						mix, count, ob, ordy = 0, 0, 0, false
					} else if c.AtTick() {
						if !c.Get(en) {
							mix, count, ob, ordy = 0, 0, 0, false
						} else {
							ordy = false
							if c.Get(ld) {
								fb := (mix&0x80 != 0) != c.Get(in)
								mix <<= 1
								if fb {
									mix |= 1
								}
								count++
								if count == batchSize {
									ob, ordy = mix, true
									mix, count = 0, 0
								}
							}
						}
					}
					for i, n := range out {
						c.Set(n, ob&(1<<uint(i)) != 0)
					}
					c.Set(rdy, ordy)
				}}
		}}).NewPart(w)
}
