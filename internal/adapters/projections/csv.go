// Package projections loads the player projection table from CSV.
package projections

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fastbreak/internal/domain/model"
	"fastbreak/pkg/logger"
)

// CSVSource reads projection rows from a local CSV file. The first row
// is a header; the player column is the one named "Player"
// (case-insensitive, whitespace-trimmed) or the first column when no
// header matches. Every other known category column is parsed as a
// float; blank or unparseable cells are recorded as absent, never as
// zero.
type CSVSource struct {
	path       string
	categories []model.Category
	log        logger.Logger
}

// Option applies a configuration option to the CSVSource.
type Option func(*CSVSource)

// WithCategories sets the category columns to read.
func WithCategories(categories []model.Category) Option {
	return func(s *CSVSource) {
		if len(categories) > 0 {
			s.categories = append([]model.Category(nil), categories...)
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(s *CSVSource) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCSVSource creates a projection source for the given file path.
func NewCSVSource(path string, opts ...Option) *CSVSource {
	s := &CSVSource{
		path:       path,
		categories: model.DefaultCategories(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Projections loads and parses the projection table. A missing file is
// not fatal: it yields an empty table so the run can degrade to "no
// recommendation" (the caller logs the condition).
func (s *CSVSource) Projections(ctx context.Context) ([]model.ProjectionRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Warn(ctx, "projections file not found; continuing with empty table",
					logger.String("path", s.path))
			}
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadProjections, err)
	}
	defer f.Close()

	return s.parse(f)
}

func (s *CSVSource) parse(r io.Reader) ([]model.ProjectionRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadProjections, err)
	}

	nameCol := 0
	colFor := make(map[int]model.Category)
	for i, raw := range header {
		col := strings.TrimSpace(raw)
		if strings.EqualFold(col, "Player") {
			nameCol = i
			continue
		}
		for _, cat := range s.categories {
			if col == string(cat) {
				colFor[i] = cat
				break
			}
		}
	}

	var rows []model.ProjectionRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadProjections, err)
		}
		if nameCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			continue
		}
		row := model.ProjectionRow{Name: name, Stats: make(map[model.Category]float64)}
		for i, cat := range colFor {
			if i >= len(record) {
				continue
			}
			if v, ok := parseStat(record[i]); ok {
				row.Stats[cat] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseStat parses a numeric cell. Percent signs are tolerated since
// percentage columns store percent values. ok is false for blank or
// non-numeric cells, which downstream treats as absent data.
func parseStat(cell string) (float64, bool) {
	cell = strings.TrimSuffix(strings.TrimSpace(cell), "%")
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
