package analysis

import (
	"math"

	"medviz/domain/exam"
	"medviz/internal/errors"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix holds pairwise Pearson coefficients between columns.
// Values[i][j] is the coefficient of Columns[i] and Columns[j]; a constant
// column correlates as NaN with everything, itself included.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Size returns the number of columns
func (m *CorrelationMatrix) Size() int { return len(m.Columns) }

// At returns the coefficient at row i, column j
func (m *CorrelationMatrix) At(i, j int) float64 { return m.Values[i][j] }

// Lookup returns the coefficient of two named columns
func (m *CorrelationMatrix) Lookup(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

func (m *CorrelationMatrix) index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Correlate computes the Pearson correlation matrix over every derived column of rows.
func Correlate(rows []exam.Record) (*CorrelationMatrix, error) {
	if len(rows) < 2 {
		return nil, errors.ValidationError("correlation needs at least two rows")
	}

	cols := exam.DerivedColumns
	n := len(cols)
	data := make([][]float64, n)
	for j := range data {
		data[j] = make([]float64, len(rows))
	}
	for i, r := range rows {
		for j, v := range r.Values() {
			data[j][i] = v
		}
	}

	constant := make([]bool, n)
	for j := range data {
		constant[j] = isConstant(data[j])
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var r float64
			switch {
			case constant[i] || constant[j]:
				r = math.NaN()
			case i == j:
				r = 1
			default:
				r = clamp(stat.Correlation(data[i], data[j], nil))
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{Columns: append([]string(nil), cols...), Values: values}, nil
}

func isConstant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// clamp trims floating point overshoot outside [-1, 1]
func clamp(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}

// UpperTriangleMask marks the cells hidden from the heatmap: the diagonal
// and everything above it (mask[i][j] is true when j >= i).
func UpperTriangleMask(n int) [][]bool {
	mask := make([][]bool, n)
	for i := range mask {
		mask[i] = make([]bool, n)
		for j := i; j < n; j++ {
			mask[i][j] = true
		}
	}
	return mask
}
