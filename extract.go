// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

// Extractor returns a von Neumann de-biaser.
//
//	Inputs: in, arm, rst
//	Outputs: out, strobe
//
// Every cycle the raw bit on in shifts into a 2-bit sample buffer. A phase
// bit toggles every cycle while arm is high and is held at zero otherwise,
// so that each pair of adjacent raw samples is evaluated exactly once and
// pairs never overlap. When a pair is evaluated and its two bits differ,
// out presents the most recent sample and strobe pulses for one cycle;
// equal pairs are discarded. This removes any static bias in the raw
// stream at the cost of roughly half the bits.
//
// arm is normally wired to the last cell's enable chain output: extraction
// only starts once the whole cascade is enabled.
//
func Extractor(w string) Part {
	return (&PartSpec{
		Name:    "VNX",
		Inputs:  IO("in, arm, rst"),
		Outputs: IO("out, strobe"),
		Mount: func(s *Socket) []Component {
			in, arm, rst := s.Pin(pIn), s.Pin(pArm), s.Pin(pRst)
			out, strobe := s.Pin(pOut), s.Pin(pStrobe)
			// b0 holds the most recent sample, b1 the one before it.
			var b0, b1, phase, obit, ovalid bool
			return []Component{
				func(c *Circuit) {
					if c.Get(rst) {
						b0, b1, phase, obit, ovalid = false, false, false, false, false
					} else if c.AtTick() {
						// classify with the current phase and buffer, then
						// shift and toggle.
						ovalid = phase && b0 != b1
						obit = b0
						b1, b0 = b0, c.Get(in)
						phase = c.Get(arm) && !phase
					}
					c.Set(out, obit)
					c.Set(strobe, ovalid)
				}}
		}}).NewPart(w)
}
