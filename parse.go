// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trng

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// busPinName returns the pin name for the n-th bit of the named bus.
//
func busPinName(name string, n int) string {
	return name + "[" + strconv.Itoa(n) + "]"
}

// IO expands a pin description string to a slice of individual pin names,
// expanding bus declarations. For example:
//
//	IO("in[2], sel")	// returns []string{"in[0]", "in[1]", "sel"}
//
// IO panics on a malformed description: pin lists appear in PartSpec
// literals where an error return would be unusable.
//
func IO(spec string) []string {
	var out []string
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			panic(errors.Errorf("empty pin name in %q", spec))
		}
		i := strings.IndexRune(field, '[')
		if i < 0 {
			out = append(out, field)
			continue
		}
		name := field[:i]
		n := field[i+1:]
		i = strings.IndexRune(n, ']')
		if name == "" || i < 0 || i != len(n)-1 {
			panic(errors.Errorf("malformed bus declaration %q", field))
		}
		size, err := strconv.Atoi(n[:i])
		if err != nil || size <= 0 {
			panic(errors.Errorf("bad bus size in %q", field))
		}
		for i := 0; i < size; i++ {
			out = append(out, busPinName(name, i))
		}
	}
	return out
}

// A Connection links a part's I/O pin (Pin) to a wire in its container
// circuit (Wire).
//
type Connection struct {
	Pin  string
	Wire string
}

// ParseConnections parses a connections configuration string and returns
// individual pin to wire mappings:
//
//	"pin=wire, pin=wire, ..."
//
// Bus ranges expand on both sides, one to one:
//
//	"in[0..7]=q[0..7]"
//
// A range on one side only fans a single pin or wire out to every element
// of the range.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection

	for _, m := range strings.Split(c, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		i := strings.IndexRune(m, '=')
		if i < 0 {
			return nil, errors.Errorf("invalid pin mapping %q", m)
		}
		k, v := strings.TrimSpace(m[:i]), strings.TrimSpace(m[i+1:])
		if k == "" || v == "" {
			return nil, errors.Errorf("invalid pin mapping %q", m)
		}
		ks, err := expandRange(k)
		if err != nil {
			return nil, errors.Wrap(err, "expand pin "+k)
		}
		vs, err := expandRange(v)
		if err != nil {
			return nil, errors.Wrap(err, "expand wire "+v)
		}
		switch {
		case len(ks) == len(vs):
			for i := range ks {
				conns = append(conns, Connection{Pin: ks[i], Wire: vs[i]})
			}
		case len(ks) == 1:
			for _, v := range vs {
				conns = append(conns, Connection{Pin: k, Wire: v})
			}
		case len(vs) == 1:
			for _, k := range ks {
				conns = append(conns, Connection{Pin: k, Wire: v})
			}
		default:
			return nil, errors.Errorf("pin count mismatch in mapping %q", m)
		}
	}
	return conns, nil
}

func expandRange(name string) ([]string, error) {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	if bus == "" {
		return nil, errors.New("empty bus name")
	}
	n := name[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	n = n[i+2:]
	i = strings.IndexRune(n, ']')
	if i < 0 {
		return nil, errors.New("no terminating ] in bus range")
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.Errorf("invalid bus range [%d..%d]", start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, busPinName(bus, i))
	}
	return r, nil
}
