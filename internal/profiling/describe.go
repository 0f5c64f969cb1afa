package profiling

import (
	"math"

	"medviz/domain/exam"
	"medviz/internal/analysis"
	"medviz/internal/errors"

	"github.com/montanaflynn/stats"
)

// ColumnSummary is the describe() view of one numeric column
type ColumnSummary struct {
	Column   string
	Count    int
	Mean     float64
	StdDev   float64 // sample standard deviation
	Min      float64
	Q25      float64
	Median   float64
	Q75      float64
	Max      float64
	Skewness float64
	Outliers int // points beyond 1.5 IQR from the quartiles
}

// DataProfiler summarizes the columns of a derived table
type DataProfiler struct {
	method analysis.QuantileMethod
}

// NewDataProfiler creates a profiler whose quartiles use method
func NewDataProfiler(method analysis.QuantileMethod) *DataProfiler {
	return &DataProfiler{method: method}
}

// DescribeTable summarizes every derived column, in schema order
func (dp *DataProfiler) DescribeTable(table *exam.Table) ([]ColumnSummary, error) {
	if table == nil || table.Len() == 0 {
		return nil, errors.ValidationError("cannot describe an empty table")
	}

	out := make([]ColumnSummary, 0, len(exam.DerivedColumns))
	for _, col := range exam.DerivedColumns {
		values, _ := table.Column(col)
		summary, err := dp.ProfileColumn(col, values)
		if err != nil {
			return nil, errors.Wrapf(err, "profile column %s", col)
		}
		out = append(out, summary)
	}
	return out, nil
}

// ProfileColumn computes the summary of one column
func (dp *DataProfiler) ProfileColumn(name string, data []float64) (ColumnSummary, error) {
	s := ColumnSummary{Column: name, Count: len(data)}

	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if len(data) > 1 {
		if s.StdDev, err = stats.StandardDeviationSample(data); err != nil {
			return s, err
		}
	} else {
		s.StdDev = math.NaN()
	}

	if s.Q25, err = analysis.Quantile(data, 0.25, dp.method); err != nil {
		return s, err
	}
	if s.Q75, err = analysis.Quantile(data, 0.75, dp.method); err != nil {
		return s, err
	}

	s.Skewness = calculateSkewness(data, s.Mean)
	s.Outliers = detectOutliers(data, s.Q25, s.Q75)
	return s, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean float64) float64 {
	n := float64(len(data))
	if n < 3 {
		return 0
	}

	var m2, m3 float64
	for _, x := range data {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return 0
	}

	g1 := m3 / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// detectOutliers counts points outside the 1.5 IQR fences
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}
