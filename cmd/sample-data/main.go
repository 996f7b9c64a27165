// Command sample-data writes a demo projections CSV plus roster and
// waiver name lists so the advisor can be exercised locally without a
// spreadsheet or league access:
//
//	go run ./cmd/sample-data -dir testdata
//	FASTBREAK_PROJECTIONS_PATH=testdata/player_projections.csv \
//	FASTBREAK_ROSTER_FILE=testdata/roster.txt \
//	FASTBREAK_WAIVER_FILE=testdata/waiver.txt \
//	FASTBREAK_DRY_RUN=true go run ./cmd
package main

import (
	"crypto/rand"
	"encoding/csv"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"fastbreak/internal/domain/model"
)

const randomFloatDivisor = 1_000_000

// Stat ranges for generated projections, loosely calibrated to
// per-game NBA numbers.
var statRanges = map[model.Category][2]float64{
	model.Points:       {4, 34},
	model.Rebounds:     {2, 14},
	model.Assists:      {1, 11},
	model.Steals:       {0.3, 2.2},
	model.Blocks:       {0.1, 2.8},
	model.ThreesMade:   {0.2, 4.5},
	model.FieldGoalPct: {40, 58},
	model.FreeThrowPct: {65, 92},
}

var samplePlayers = []string{
	"Alvin Carter", "Bo Jessup", "Cyrus Vance Jr.", "Dre Holloway",
	"Emeka Oduya", "Felix Braun", "Gil Santana", "Hakeem Ross",
	"Ivo Petrov", "Jalen Marsh", "Kofi Aboah", "Luka Brandt",
	"Moses Trent", "Nico Fontaine", "Omar Castillo", "Petr Havel",
	"Quincy Dale", "Rashad Kemp", "Sasha Volkov", "Trey Whitfield",
}

func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func main() {
	dir := flag.String("dir", ".", "output directory")
	rosterSize := flag.Int("roster", 10, "number of roster players")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "create output dir:", err)
		os.Exit(1)
	}

	if err := writeProjections(filepath.Join(*dir, "player_projections.csv")); err != nil {
		fmt.Fprintln(os.Stderr, "write projections:", err)
		os.Exit(1)
	}

	n := *rosterSize
	if n > len(samplePlayers) {
		n = len(samplePlayers)
	}
	if err := writeNames(filepath.Join(*dir, "roster.txt"), samplePlayers[:n]); err != nil {
		fmt.Fprintln(os.Stderr, "write roster:", err)
		os.Exit(1)
	}
	if err := writeNames(filepath.Join(*dir, "waiver.txt"), samplePlayers[n:]); err != nil {
		fmt.Fprintln(os.Stderr, "write waiver:", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d projections, %d roster and %d waiver players to %s\n",
		len(samplePlayers), n, len(samplePlayers)-n, *dir)
}

func writeProjections(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	cats := model.DefaultCategories()
	header := append([]string{"Player"}, make([]string, len(cats))...)
	for i, c := range cats {
		header[i+1] = string(c)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, name := range samplePlayers {
		record := make([]string, len(cats)+1)
		record[0] = name
		for i, c := range cats {
			r := statRanges[c]
			v := r[0] + getRandomFloat()*(r[1]-r[0])
			record[i+1] = strconv.FormatFloat(v, 'f', 1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeNames(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, name := range names {
		if _, err := fmt.Fprintln(f, name); err != nil {
			return err
		}
	}
	return nil
}
