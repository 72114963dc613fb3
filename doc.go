// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package trng simulates a ring-oscillator based true random number generator
pipeline: an array of free-running oscillator cells with cascaded enables,
an XOR combiner, a von Neumann de-biaser and a sampling controller that
folds de-biased bits into output bytes through an LFSR-style mixing
register.

The package is built on a small synchronous logic simulator. Registers
update simultaneously on each clock cycle and signal states are double
buffered, so no component ever observes a value written during the same
simulation step. Custom parts are implemented the same way as in a
hardware description language, as closures mounted into a circuit.

The simulated oscillator rings are deterministic; true entropy is a
property of the physical fabric a design like this is instantiated on,
not of the logic itself. The deterministic behavior is what makes the
pipeline testable bit for bit.
*/
package trng
