package analysis

import (
	"testing"

	"medviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile_Linear(t *testing.T) {
	values := []float64{200, 160, 190, 170, 180}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 160},
		{0.025, 161},
		{0.5, 180},
		{0.975, 199},
		{1, 200},
	}
	for _, tt := range tests {
		got, err := Quantile(values, tt.p, QuantileLinear)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "p=%v", tt.p)
	}

	assert.Equal(t, []float64{200, 160, 190, 170, 180}, values, "input must not be reordered")
}

func TestQuantile_NearestRank(t *testing.T) {
	values := []float64{160, 170, 180, 190, 200}

	low, err := Quantile(values, 0.025, QuantileNearestRank)
	require.NoError(t, err)
	high, err := Quantile(values, 0.975, QuantileNearestRank)
	require.NoError(t, err)

	assert.Equal(t, 160.0, low)
	assert.Equal(t, 200.0, high)
}

func TestQuantile_Empirical(t *testing.T) {
	values := []float64{190, 160, 200, 170, 180}

	low, err := Quantile(values, 0.025, QuantileEmpirical)
	require.NoError(t, err)
	mid, err := Quantile(values, 0.5, QuantileEmpirical)
	require.NoError(t, err)

	assert.Equal(t, 160.0, low)
	assert.Equal(t, 180.0, mid)
}

func TestQuantile_Errors(t *testing.T) {
	_, err := Quantile(nil, 0.5, QuantileLinear)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	_, err = Quantile([]float64{1}, 1.5, QuantileLinear)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = Quantile([]float64{1}, 0.5, QuantileMethod("median-of-three"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestParseQuantileMethod(t *testing.T) {
	m, err := ParseQuantileMethod("")
	require.NoError(t, err)
	assert.Equal(t, QuantileLinear, m)

	m, err = ParseQuantileMethod("nearest-rank")
	require.NoError(t, err)
	assert.Equal(t, QuantileNearestRank, m)

	_, err = ParseQuantileMethod("midpoint")
	assert.Error(t, err)
}
