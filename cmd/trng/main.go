// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command trng runs a ring-oscillator TRNG pipeline simulation and writes
// the generated bytes to stdout in hex, one row of 16 per line. Progress
// and statistics go to stderr.
//
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/db47h/trng"
)

func main() {
	var (
		cells    = flag.Int("cells", 3, "number of entropy cells")
		length   = flag.Int("len", 5, "stage count of cell 0 (odd); cell i uses len+2*i")
		fallback = flag.Bool("fallback", false, "use the deterministic fallback bit source")
		n        = flag.Int("n", 64, "number of bytes to generate")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = "15:04:05.000"
	})).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	p, err := trng.New(trng.Config{
		Cells:       *cells,
		FirstLength: *length,
		Fallback:    *fallback,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuration rejected")
	}
	log.Info().
		Int("cells", *cells).
		Int("len", *length).
		Bool("fallback", *fallback).
		Int("components", p.Size()).
		Msg("pipeline ready")

	buf := make([]byte, *n)
	start := time.Now()
	if _, err := p.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("read failed")
	}
	elapsed := time.Since(start)

	for i := 0; i < len(buf); i += 16 {
		end := i + 16
		if end > len(buf) {
			end = len(buf)
		}
		fmt.Printf("% x\n", buf[i:end])
	}

	ticks := p.Ticks()
	log.Info().
		Uint64("cycles", ticks).
		Dur("elapsed", elapsed).
		Float64("cycles_per_byte", float64(ticks)/float64(len(buf))).
		Msg("done")
}
