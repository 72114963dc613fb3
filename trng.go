// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

import (
	"github.com/pkg/errors"
)

// A Component is a component in a circuit that can Get and Set signal states.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query the socket
// for assigned pin numbers and return closures around these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "Not",
//		Inputs: IO("in"),
//		Outputs: IO("out"),
//		Mount: func (s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func (c *Circuit) { c.Set(out, !c.Get(in)) }
//			}
//		}}
//
// Components that model registered (clocked) logic must keep their state in
// closure variables, latch inputs only on steps where c.AtTick() is true,
// and drive their output pins on every step.
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
// Custom parts are implemented by creating a PartSpec and using its NewPart
// method as a NewPartFn:
//
//	var notGate = notSpec.NewPart
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}.
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string
	// Pinout maps the input and output pin names (public interface) of a part
	// to internal (private) names. If nil, the Inputs and Outputs values will
	// be used and mapped one to one.
	Pinout map[string]string

	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart wraps p together with the given connections into a Part.
// See ParseConnections for the syntax of the connections string.
// NewPart panics if the connections string is malformed.
//
func (p *PartSpec) NewPart(connections string) Part {
	ex, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	if p.Pinout == nil {
		p.Pinout = make(map[string]string)
		for _, i := range p.Inputs {
			p.Pinout[i] = i
		}
		for _, o := range p.Outputs {
			p.Pinout[o] = o
		}
	}
	return Part{p, ex}
}

// A NewPartFn is a function that takes a connections configuration string
// and returns a new Part.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a
// host circuit.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// minStepsPerCycle leaves room for the deepest combinational path used by
// the parts in this package (cell output through the XOR combiner) to
// settle between two clock edges.
const minStepsPerCycle = 4

// Circuit is a runnable circuit simulation.
//
type Circuit struct {
	s0    []bool // signal states, current step
	s1    []bool // signal states, next step
	cs    []Component
	count int  // wire count
	spc   uint // steps per clock cycle
	step  uint
}

// NewCircuit builds a new circuit from the given parts.
//
// stepsPerCycle indicates how many simulation steps to run per clock cycle.
// It is rounded up to a power of two and must leave enough steps for
// combinational signals to settle between two clock edges (one step per
// level of combinational logic). The value 0 selects a default suitable
// for the parts in this package.
//
func NewCircuit(stepsPerCycle uint, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	if stepsPerCycle < minStepsPerCycle {
		stepsPerCycle = minStepsPerCycle
	}
	stepsPerCycle--
	stepsPerCycle |= stepsPerCycle >> 1
	stepsPerCycle |= stepsPerCycle >> 2
	stepsPerCycle |= stepsPerCycle >> 4
	stepsPerCycle |= stepsPerCycle >> 8
	stepsPerCycle |= stepsPerCycle >> 16
	stepsPerCycle |= stepsPerCycle >> 32
	stepsPerCycle++

	// new circuit with room for constant value pins.
	c := &Circuit{count: cstCount, spc: stepsPerCycle}
	root := newSocket(c)

	for _, p := range parts {
		ups, err := mount(c, root, p)
		if err != nil {
			return nil, err
		}
		c.cs = append(c.cs, ups...)
	}
	c.s0 = make([]bool, c.count)
	c.s1 = make([]bool, c.count)
	// init constant pins
	c.s0[cstTrue] = true
	c.s1[cstTrue] = true

	return c, nil
}

// mount wires part p into the circuit's root socket and returns its update
// components. Pins named in p.Conns map to shared circuit wires; unconnected
// inputs read the false constant and unconnected outputs drive a fresh wire.
//
func mount(c *Circuit, root *Socket, p Part) ([]Component, error) {
	sub := newSocket(c)
	seen := make(map[string]bool, len(p.Conns))
	for _, cn := range p.Conns {
		priv, ok := p.Pinout[cn.Pin]
		if !ok {
			return nil, errors.Errorf("part %s: unknown pin %q", p.Name, cn.Pin)
		}
		if seen[cn.Pin] {
			return nil, errors.Errorf("part %s: pin %q connected twice", p.Name, cn.Pin)
		}
		seen[cn.Pin] = true
		sub.m[priv] = root.PinOrNew(cn.Wire)
	}
	for _, in := range p.Inputs {
		if !seen[in] {
			sub.m[p.Pinout[in]] = cstFalse
		}
	}
	for _, out := range p.Outputs {
		if !seen[out] {
			sub.m[p.Pinout[out]] = c.allocPin()
		}
	}
	return p.Mount(sub), nil
}

// allocPin allocates a wire and returns its pin number.
//
func (c *Circuit) allocPin() int {
	cnt := c.count
	c.count++
	return cnt
}

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint {
	return c.step
}

// SPC returns the number of simulation steps per clock cycle.
//
func (c *Circuit) SPC() uint {
	return c.spc
}

// AtTick returns true if the current step is at the beginning of a clock
// cycle (raising edge of the clock). Registered components latch their
// inputs on these steps.
//
func (c *Circuit) AtTick() bool {
	return c.step&(c.spc-1) == 0
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state s of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Step advances the simulation by one step.
//
func (c *Circuit) Step() {
	for _, f := range c.cs {
		f(c)
	}
	c.step++
	c.s0, c.s1 = c.s1, c.s0
}

// TickTock runs the simulation for a whole clock cycle. Once TickTock
// returns, the outputs of clocked components have stabilized.
//
func (c *Circuit) TickTock() {
	for i := uint(0); i < c.spc; i++ {
		c.Step()
	}
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }
