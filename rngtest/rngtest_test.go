// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rngtest_test

import (
	"testing"

	"github.com/db47h/trng"
	"github.com/db47h/trng/rngtest"
)

func TestComparePipelines(t *testing.T) {
	rngtest.ComparePipelines(t, trng.Config{Cells: 1, FirstLength: 3, Fallback: true}, 4)
	rngtest.ComparePipelines(t, trng.Config{Cells: 3, FirstLength: 5, Fallback: true}, 4)
}

func TestMonobit(t *testing.T) {
	td := []struct {
		name string
		data []byte
		want float64
	}{
		{"empty", nil, 0.5},
		{"zeros", []byte{0, 0, 0}, 0},
		{"ones", []byte{0xff, 0xff}, 1},
		{"half", []byte{0xaa, 0x55}, 0.5},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if got := rngtest.Monobit(d.data); got != d.want {
				t.Errorf("expected %v, got %v", d.want, got)
			}
		})
	}
}

func TestCollect_balance(t *testing.T) {
	// the fallback pipeline is deterministic, not random, but after
	// de-biasing and mixing its output should not be anywhere near stuck.
	data := rngtest.Collect(t, trng.Config{Cells: 3, FirstLength: 5, Fallback: true}, 32)
	if f := rngtest.Monobit(data); f < 0.1 || f > 0.9 {
		t.Errorf("monobit fraction %v, output looks stuck", f)
	}
}
