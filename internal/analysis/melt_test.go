package analysis

import (
	"testing"

	"medviz/domain/exam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMelt_Shape(t *testing.T) {
	rows := syntheticRows(t, 300)
	long := Melt(rows)

	require.Len(t, long, 6*len(rows))

	// feature-major, row order within each feature
	for fi, feature := range exam.Features {
		for ri, r := range rows {
			got := long[fi*len(rows)+ri]
			want, _ := r.Feature(feature)
			assert.Equal(t, feature, got.Feature)
			assert.Equal(t, r.Cardio, got.Cardio)
			assert.Equal(t, want, got.Value)
		}
	}
}

func TestCountFeatures_SumsBackToTotals(t *testing.T) {
	rows := syntheticRows(t, 400)
	counts := CountFeatures(Melt(rows))

	assert.Equal(t, []int{0, 1}, counts.CardioLevels)
	assert.Equal(t, []int{0, 1}, counts.ValueLevels)
	assert.Equal(t, exam.Features, counts.Features)

	perCardio := map[int]int{}
	perFeature := map[CountKey]int{}
	for _, r := range rows {
		perCardio[r.Cardio]++
		for _, f := range exam.Features {
			v, _ := r.Feature(f)
			perFeature[CountKey{Cardio: r.Cardio, Feature: f, Value: v}]++
		}
	}

	largest := 0
	for _, c := range counts.CardioLevels {
		for _, f := range counts.Features {
			assert.Equal(t, perCardio[c], counts.Total(c, f), "cardio=%d feature=%s", c, f)
			for _, v := range counts.ValueLevels {
				n := counts.Count(c, f, v)
				assert.Equal(t, perFeature[CountKey{Cardio: c, Feature: f, Value: v}], n)
				if n > largest {
					largest = n
				}
			}
		}
	}
	assert.Equal(t, largest, counts.Max())
}

func TestCountFeatures_Small(t *testing.T) {
	long := []exam.FeatureRow{
		{Cardio: 1, Feature: exam.ColSmoke, Value: 1},
		{Cardio: 1, Feature: exam.ColSmoke, Value: 1},
		{Cardio: 0, Feature: exam.ColSmoke, Value: 0},
	}
	counts := CountFeatures(long)

	assert.Equal(t, 2, counts.Count(1, exam.ColSmoke, 1))
	assert.Equal(t, 0, counts.Count(1, exam.ColSmoke, 0))
	assert.Equal(t, 1, counts.Count(0, exam.ColSmoke, 0))
	assert.Equal(t, 0, counts.Count(0, exam.ColActive, 1))
	assert.Equal(t, 2, counts.Max())
}
