// Package scoring converts raw projection rows into comparable
// normalized scores (z-scores) per category.
package scoring

import (
	"math"

	"fastbreak/internal/domain/model"
)

// Normalizer computes z-scores over a projection table for a fixed
// category list.
type Normalizer struct {
	categories []model.Category
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithCategories overrides the default category list. Empty or nil
// input is ignored.
func WithCategories(categories []model.Category) Option {
	return func(n *Normalizer) {
		if len(categories) > 0 {
			n.categories = append([]model.Category(nil), categories...)
		}
	}
}

// NewNormalizer creates a Normalizer with the default eight categories.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{categories: model.DefaultCategories()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Categories returns a copy of the active category list.
func (n *Normalizer) Categories() []model.Category {
	return append([]model.Category(nil), n.categories...)
}

// Normalize scores every row against the population of present values
// per category. Rows missing a category are excluded from that
// category's mean and standard deviation; they are never treated as
// zeros. A category with zero deviation, or absent from the whole
// table, contributes exactly 0 to every row. The aggregate is the sum
// of z-scores over the row's present categories; a row with no present
// category at all is marked unscored rather than given an aggregate of
// zero. Input order is preserved and inputs are not mutated.
func (n *Normalizer) Normalize(rows []model.ProjectionRow) []model.ScoredRow {
	type moments struct {
		mean float64
		std  float64
	}
	stats := make(map[model.Category]moments, len(n.categories))
	for _, cat := range n.categories {
		mean, std, ok := populationMoments(rows, cat)
		if !ok {
			continue
		}
		stats[cat] = moments{mean: mean, std: std}
	}

	scored := make([]model.ScoredRow, len(rows))
	for i, row := range rows {
		z := make(map[model.Category]float64, len(n.categories))
		agg := 0.0
		present := false
		for _, cat := range n.categories {
			v, ok := row.Value(cat)
			if !ok {
				continue
			}
			present = true
			m, known := stats[cat]
			if !known || m.std == 0 {
				z[cat] = 0
				continue
			}
			z[cat] = (v - m.mean) / m.std
			agg += z[cat]
		}
		scored[i] = model.ScoredRow{
			ProjectionRow: row,
			Z:             z,
			Aggregate:     agg,
			Scored:        present,
		}
		if !present {
			scored[i].Aggregate = 0
		}
	}
	return scored
}

// populationMoments computes the population mean and standard deviation
// of a category over the rows that carry a value for it. ok is false
// when no row carries the category.
func populationMoments(rows []model.ProjectionRow, cat model.Category) (mean, std float64, ok bool) {
	count := 0
	sum := 0.0
	for _, row := range rows {
		if v, present := row.Value(cat); present {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, 0, false
	}
	mean = sum / float64(count)

	variance := 0.0
	for _, row := range rows {
		if v, present := row.Value(cat); present {
			d := v - mean
			variance += d * d
		}
	}
	variance /= float64(count)
	return mean, math.Sqrt(variance), true
}
