// Command gentdv generates deterministic mock TDV climate observation files
// for tests and benchmarking. It writes the exact field layout the decoder
// expects, so fixtures cannot drift from the parser.
//
// Usage:
//
//	go run ./cmd/gentdv -out data/mock/sample.tdv -records 10000 -states 5 -seed 42
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// stateCodes lists US state codes in a fixed order so -states N is stable
// across runs with the same seed.
var stateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated TDV file")
	records := flag.Int("records", 10000, "number of observation lines to generate")
	states := flag.Int("states", 5, "number of distinct state codes to draw from (max 50)")
	seed := flag.Int64("seed", 1, "PRNG seed for reproducible output")
	start := flag.String("start", "2015-01-01", "first observation date (YYYY-MM-DD)")
	days := flag.Int("days", 365, "observation window in days")
	badLines := flag.Int("bad-lines", 0, "number of malformed lines to scatter through the file")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *states < 1 || *states > len(stateCodes) {
		return fmt.Errorf("-states must be between 1 and %d", len(stateCodes))
	}

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("invalid -start date: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := bufio.NewWriter(f)

	// Scatter the malformed lines at deterministic positions.
	badAt := make(map[int]bool, *badLines)
	for len(badAt) < *badLines && len(badAt) < *records {
		badAt[rng.Intn(*records)] = true
	}

	windowSeconds := int64(*days) * 24 * 3600
	for i := 0; i < *records; i++ {
		if badAt[i] {
			fmt.Fprintf(w, "%s\tgarbage-line-%d\n", stateCodes[rng.Intn(*states)], i)
			continue
		}
		writeObservation(w, rng, startDate, windowSeconds, *states)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	log.Printf("wrote %d lines (%d malformed) to %s", *records, len(badAt), *out)
	return nil
}

func writeObservation(w *bufio.Writer, rng *rand.Rand, start time.Time, windowSeconds int64, states int) {
	code := stateCodes[rng.Intn(states)]
	observedMS := (start.Unix() + rng.Int63n(windowSeconds)) * 1000
	humidity := float64(rng.Intn(101))
	snow := float64(rng.Intn(10) / 9) // ~10% snow records
	cloud := float64(rng.Intn(101))
	lightning := float64(rng.Intn(20) / 19) // ~5% lightning records
	pressure := 95000 + rng.Float64()*8000
	kelvin := 250 + rng.Float64()*60 // roughly -10F to 98F

	fmt.Fprintf(w, "%s\t%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.5f\n",
		code, observedMS, randomGeohash(rng), humidity, snow, cloud, lightning, pressure, kelvin)
}

func randomGeohash(rng *rand.Rand) string {
	b := make([]byte, 12)
	for i := range b {
		b[i] = geohashAlphabet[rng.Intn(len(geohashAlphabet))]
	}
	return string(b)
}
