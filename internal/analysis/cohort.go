package analysis

import (
	"medviz/domain/exam"
	"medviz/internal/errors"
)

// Percentile band kept by the cohort filter.
const (
	LowerQuantile = 0.025
	UpperQuantile = 0.975
)

// Predicate is one named plausibility check on a derived row.
type Predicate struct {
	Name string
	Keep func(exam.Record) bool
}

// CohortFilter drops physiologically implausible rows: inverted blood
// pressure, and height or weight outside the 2.5-97.5 percentile band.
// The bounds come from the full unfiltered columns.
type CohortFilter struct {
	Method     QuantileMethod
	HeightLow  float64
	HeightHigh float64
	WeightLow  float64
	WeightHigh float64
}

// NewCohortFilter computes the percentile bounds of rows.
func NewCohortFilter(rows []exam.Record, method QuantileMethod) (*CohortFilter, error) {
	if len(rows) == 0 {
		return nil, errors.ValidationError("cannot build a cohort filter from an empty table")
	}

	heights, _ := exam.Column(rows, exam.ColHeight)
	weights, _ := exam.Column(rows, exam.ColWeight)

	f := &CohortFilter{Method: method}
	bounds := []struct {
		dst    *float64
		values []float64
		p      float64
		name   string
	}{
		{&f.HeightLow, heights, LowerQuantile, "height"},
		{&f.HeightHigh, heights, UpperQuantile, "height"},
		{&f.WeightLow, weights, LowerQuantile, "weight"},
		{&f.WeightHigh, weights, UpperQuantile, "weight"},
	}
	for _, b := range bounds {
		q, err := Quantile(b.values, b.p, method)
		if err != nil {
			return nil, errors.Wrapf(err, "%s quantile %.3f", b.name, b.p)
		}
		*b.dst = q
	}
	return f, nil
}

// Predicates returns the five checks a row must all pass.
func (f *CohortFilter) Predicates() []Predicate {
	return []Predicate{
		{Name: "ap_lo<=ap_hi", Keep: func(r exam.Record) bool { return r.APLo <= r.APHi }},
		{Name: "height>=p2.5", Keep: func(r exam.Record) bool { return r.Height >= f.HeightLow }},
		{Name: "height<=p97.5", Keep: func(r exam.Record) bool { return r.Height <= f.HeightHigh }},
		{Name: "weight>=p2.5", Keep: func(r exam.Record) bool { return r.Weight >= f.WeightLow }},
		{Name: "weight<=p97.5", Keep: func(r exam.Record) bool { return r.Weight <= f.WeightHigh }},
	}
}

// Keep reports whether r passes every predicate.
func (f *CohortFilter) Keep(r exam.Record) bool {
	return keepAll(f.Predicates(), r)
}

// Apply returns the rows passing every predicate, in their original order.
func (f *CohortFilter) Apply(rows []exam.Record) []exam.Record {
	return ApplyPredicates(rows, f.Predicates())
}

// ApplyPredicates keeps the rows passing every given predicate.
func ApplyPredicates(rows []exam.Record, preds []Predicate) []exam.Record {
	out := make([]exam.Record, 0, len(rows))
	for _, r := range rows {
		if keepAll(preds, r) {
			out = append(out, r)
		}
	}
	return out
}

// Rejections counts, per predicate, how many rows it would drop on its own.
func (f *CohortFilter) Rejections(rows []exam.Record) map[string]int {
	out := make(map[string]int)
	for _, p := range f.Predicates() {
		n := 0
		for _, r := range rows {
			if !p.Keep(r) {
				n++
			}
		}
		out[p.Name] = n
	}
	return out
}

func keepAll(preds []Predicate, r exam.Record) bool {
	for _, p := range preds {
		if !p.Keep(r) {
			return false
		}
	}
	return true
}

// FilterCohort builds the filter from rows and applies it.
func FilterCohort(rows []exam.Record, method QuantileMethod) ([]exam.Record, *CohortFilter, error) {
	f, err := NewCohortFilter(rows, method)
	if err != nil {
		return nil, nil, err
	}
	return f.Apply(rows), f, nil
}

// IDs returns the record ids of rows, in order.
func IDs(rows []exam.Record) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
