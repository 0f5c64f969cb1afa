package analysis

import (
	"sort"

	"medviz/domain/exam"
)

// Melt reshapes rows into long form: one FeatureRow per (row, feature) for
// every name in exam.Features. Output is feature-major, so all "active"
// rows come first, then "alco", and so on, each in row order.
func Melt(rows []exam.Record) []exam.FeatureRow {
	out := make([]exam.FeatureRow, 0, len(rows)*len(exam.Features))
	for _, feature := range exam.Features {
		for _, r := range rows {
			v, _ := r.Feature(feature)
			out = append(out, exam.FeatureRow{Cardio: r.Cardio, Feature: feature, Value: v})
		}
	}
	return out
}

// CountKey groups long-form rows for the count plot.
type CountKey struct {
	Cardio  int
	Feature string
	Value   int
}

// FeatureCounts is the aggregated count table behind the categorical view.
type FeatureCounts struct {
	CardioLevels []int    // sorted distinct cardio labels, one panel each
	ValueLevels  []int    // sorted distinct feature values, one bar colour each
	Features     []string // x axis order
	counts       map[CountKey]int
}

// CountFeatures aggregates long-form rows by (cardio, feature, value).
// Features keep the exam.Features order.
func CountFeatures(long []exam.FeatureRow) *FeatureCounts {
	fc := &FeatureCounts{
		Features: append([]string(nil), exam.Features...),
		counts:   make(map[CountKey]int),
	}
	cardio := map[int]bool{}
	values := map[int]bool{}
	for _, r := range long {
		fc.counts[CountKey{Cardio: r.Cardio, Feature: r.Feature, Value: r.Value}]++
		cardio[r.Cardio] = true
		values[r.Value] = true
	}
	fc.CardioLevels = sortedKeys(cardio)
	fc.ValueLevels = sortedKeys(values)
	return fc
}

// Count returns the number of long-form rows for the key.
func (fc *FeatureCounts) Count(cardio int, feature string, value int) int {
	return fc.counts[CountKey{Cardio: cardio, Feature: feature, Value: value}]
}

// Total returns the number of long-form rows for (cardio, feature) over all values.
func (fc *FeatureCounts) Total(cardio int, feature string) int {
	n := 0
	for _, v := range fc.ValueLevels {
		n += fc.Count(cardio, feature, v)
	}
	return n
}

// Max returns the largest single count, the height of the tallest bar.
func (fc *FeatureCounts) Max() int {
	m := 0
	for _, c := range fc.counts {
		if c > m {
			m = c
		}
	}
	return m
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
