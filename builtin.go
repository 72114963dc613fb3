// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

import "strconv"

// common pin names
const (
	pIn     = "in"
	pOut    = "out"
	pRst    = "rst"
	pEn     = "en"
	pLd     = "ld"
	pArm    = "arm"
	pStrobe = "strobe"
	pRdy    = "rdy"
	pECI    = "eci"
	pECO    = "eco"
)

// Input returns a 1 bit input driven by the given function.
//
//	Outputs: out
//
func Input(f func() bool) NewPartFn {
	p := &PartSpec{
		Name:    "INPUT",
		Outputs: IO(pOut),
		Mount: func(s *Socket) []Component {
			out := s.Pin(pOut)
			return []Component{
				func(c *Circuit) { c.Set(out, f()) },
			}
		}}
	return p.NewPart
}

// Output returns a 1 bit output or probe. The fn function is called with
// the pin state on every simulation step.
//
//	Inputs: in
//
func Output(f func(bool)) NewPartFn {
	p := &PartSpec{
		Name:   "OUTPUT",
		Inputs: IO(pIn),
		Mount: func(s *Socket) []Component {
			in := s.Pin(pIn)
			return []Component{
				func(c *Circuit) { f(c.Get(in)) },
			}
		}}
	return p.NewPart
}

// OutputN returns an output bus probe of the given bit size. The least
// significant bit is in[0].
//
//	Inputs: in[bits]
//
func OutputN(bits int, f func(int64)) NewPartFn {
	p := &PartSpec{
		Name:   "OUTPUT" + strconv.Itoa(bits),
		Inputs: IO(pIn + "[" + strconv.Itoa(bits) + "]"),
		Mount: func(s *Socket) []Component {
			pins := s.Bus(pIn, bits)
			return []Component{
				func(c *Circuit) {
					var v int64
					for i, n := range pins {
						if c.Get(n) {
							v |= 1 << uint(i)
						}
					}
					f(v)
				},
			}
		}}
	return p.NewPart
}

var dff = PartSpec{
	Name:    "DFF",
	Inputs:  IO("in, rst"),
	Outputs: IO("out"),
	Mount: func(s *Socket) []Component {
		in, rst, out := s.Pin(pIn), s.Pin(pRst), s.Pin(pOut)
		var cur bool
		return []Component{
			func(c *Circuit) {
				if c.Get(rst) {
					cur = false
				} else if c.AtTick() {
					cur = c.Get(in)
				}
				c.Set(out, cur)
			}}
	}}

// DFF returns a clocked data flip flop with asynchronous reset.
//
//	Inputs: in, rst
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
// Leaving rst unconnected wires it to the false constant.
//
func DFF(w string) Part {
	return dff.NewPart(w)
}

// XorN returns an n-input XOR reduction. The output is combinational and
// recomputed on every simulation step.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] ^ in[1] ^ ... ^ in[n-1]
//
func XorN(n int, w string) Part {
	return (&PartSpec{
		Name:    "XOR" + strconv.Itoa(n),
		Inputs:  IO(pIn + "[" + strconv.Itoa(n) + "]"),
		Outputs: IO(pOut),
		Mount: func(s *Socket) []Component {
			pins, out := s.Bus(pIn, n), s.Pin(pOut)
			return []Component{
				func(c *Circuit) {
					v := false
					for _, n := range pins {
						v = v != c.Get(n)
					}
					c.Set(out, v)
				},
			}
		}}).NewPart(w)
}
