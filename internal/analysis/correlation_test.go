package analysis

import (
	"math"
	"testing"

	"medviz/domain/exam"
	"medviz/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pearson(x, y []float64) float64 {
	var mx, my float64
	for i := range x {
		mx += x[i]
		my += y[i]
	}
	mx /= float64(len(x))
	my /= float64(len(y))

	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	return sxy / math.Sqrt(sxx*syy)
}

func TestCorrelate_Properties(t *testing.T) {
	rows := syntheticRows(t, 600)
	m, err := Correlate(rows)
	require.NoError(t, err)

	require.Equal(t, exam.DerivedColumns, m.Columns)
	n := m.Size()
	require.Equal(t, 14, n)

	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, m.At(i, i), "diagonal %s", m.Columns[i])
		for j := 0; j < n; j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i), "symmetry %s/%s", m.Columns[i], m.Columns[j])
			assert.GreaterOrEqual(t, m.At(i, j), -1.0)
			assert.LessOrEqual(t, m.At(i, j), 1.0)
		}
	}
}

func TestCorrelate_MatchesPearson(t *testing.T) {
	rows := syntheticRows(t, 250)
	m, err := Correlate(rows)
	require.NoError(t, err)

	pairs := [][2]string{
		{exam.ColHeight, exam.ColWeight},
		{exam.ColAPHi, exam.ColAPLo},
		{exam.ColCardio, exam.ColAge},
		{exam.ColWeight, exam.ColOverweight},
	}
	for _, p := range pairs {
		x, _ := exam.Column(rows, p[0])
		y, _ := exam.Column(rows, p[1])
		got, ok := m.Lookup(p[0], p[1])
		require.True(t, ok)
		assert.InDelta(t, pearson(x, y), got, 1e-12, "%s/%s", p[0], p[1])
	}
}

func TestCorrelate_ConstantColumnIsNaN(t *testing.T) {
	rows := deriveRows(t, testkit.LadderFixture())
	m, err := Correlate(rows)
	require.NoError(t, err)

	// every row is active
	r, _ := m.Lookup(exam.ColActive, exam.ColHeight)
	assert.True(t, math.IsNaN(r))
	r, _ = m.Lookup(exam.ColActive, exam.ColActive)
	assert.True(t, math.IsNaN(r))

	// height and weight rise in lockstep
	r, _ = m.Lookup(exam.ColHeight, exam.ColWeight)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestCorrelate_TooFewRows(t *testing.T) {
	rows := deriveRows(t, testkit.LadderFixture())
	_, err := Correlate(rows[:1])
	assert.Error(t, err)
}

func TestUpperTriangleMask(t *testing.T) {
	mask := UpperTriangleMask(4)
	require.Len(t, mask, 4)
	for i := range mask {
		for j := range mask[i] {
			assert.Equal(t, j >= i, mask[i][j], "cell %d,%d", i, j)
		}
	}
}
