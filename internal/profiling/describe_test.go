package profiling

import (
	"testing"

	"medviz/domain/exam"
	"medviz/internal/analysis"
	"medviz/internal/derive"
	"medviz/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeTable(t *testing.T) {
	table, err := derive.Derive(testkit.LadderFixture())
	require.NoError(t, err)

	summaries, err := NewDataProfiler(analysis.QuantileLinear).DescribeTable(table)
	require.NoError(t, err)
	require.Len(t, summaries, len(exam.DerivedColumns))

	byName := map[string]ColumnSummary{}
	for i, s := range summaries {
		assert.Equal(t, exam.DerivedColumns[i], s.Column)
		assert.Equal(t, 5, s.Count)
		byName[s.Column] = s
	}

	h := byName[exam.ColHeight]
	assert.Equal(t, 180.0, h.Mean)
	assert.Equal(t, 160.0, h.Min)
	assert.Equal(t, 200.0, h.Max)
	assert.Equal(t, 180.0, h.Median)
	assert.Equal(t, 170.0, h.Q25)
	assert.Equal(t, 190.0, h.Q75)
	assert.InDelta(t, 15.8113883, h.StdDev, 1e-6)
	assert.InDelta(t, 0, h.Skewness, 1e-12)
	assert.Equal(t, 0, h.Outliers)

	active := byName[exam.ColActive]
	assert.Equal(t, 0.0, active.StdDev)
	assert.Equal(t, 0.0, active.Skewness)
}

func TestProfileColumn_Outliers(t *testing.T) {
	s, err := NewDataProfiler(analysis.QuantileLinear).ProfileColumn("x", []float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Outliers)
	assert.Greater(t, s.Skewness, 0.0)
}

func TestDescribeTable_Empty(t *testing.T) {
	_, err := NewDataProfiler(analysis.QuantileLinear).DescribeTable(&exam.Table{})
	assert.Error(t, err)
}
