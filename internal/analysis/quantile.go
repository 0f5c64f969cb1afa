package analysis

import (
	"fmt"
	"math"
	"sort"

	"medviz/internal/config"
	"medviz/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// QuantileMethod selects how a quantile between two observations is resolved.
type QuantileMethod string

const (
	// QuantileLinear places p at position (n-1)p of the sorted data and
	// interpolates linearly between the neighbouring observations.
	QuantileLinear QuantileMethod = config.QuantileLinear
	// QuantileNearestRank returns the observation at ordinal rank ceil(np).
	QuantileNearestRank QuantileMethod = config.QuantileNearestRank
	// QuantileEmpirical returns the smallest observation whose empirical CDF reaches p.
	QuantileEmpirical QuantileMethod = config.QuantileEmpirical
)

// ParseQuantileMethod validates a method name
func ParseQuantileMethod(s string) (QuantileMethod, error) {
	switch m := QuantileMethod(s); m {
	case QuantileLinear, QuantileNearestRank, QuantileEmpirical:
		return m, nil
	case "":
		return QuantileLinear, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown quantile method %q", s))
}

// Quantile returns the p-quantile (0 <= p <= 1) of values. values is not modified.
func Quantile(values []float64, p float64, method QuantileMethod) (float64, error) {
	if len(values) == 0 {
		return math.NaN(), errors.ValidationError("quantile of an empty column")
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return math.NaN(), errors.InvalidInput(fmt.Sprintf("quantile %v outside [0, 1]", p))
	}

	switch method {
	case QuantileLinear, "":
		return linearQuantile(sortedCopy(values), p), nil
	case QuantileNearestRank:
		q, err := stats.PercentileNearestRank(values, p*100)
		if err != nil {
			return math.NaN(), errors.Wrap(err, "nearest-rank percentile")
		}
		return q, nil
	case QuantileEmpirical:
		return stat.Quantile(p, stat.Empirical, sortedCopy(values), nil), nil
	}
	return math.NaN(), errors.InvalidInput(fmt.Sprintf("unknown quantile method %q", method))
}

func linearQuantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func sortedCopy(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}
