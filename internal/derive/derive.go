// Package derive turns raw examination rows into the derived table both
// views consume.
package derive

import (
	"fmt"
	"math"

	"medviz/domain/exam"
	"medviz/internal/errors"
)

// OverweightBMI is the body-mass index above which a patient is overweight.
const OverweightBMI = 25.0

// BMI returns weight(kg) / height(m)^2. It is evaluated as
// weight*10000 / height^2 so that whole-centimetre heights do not pick up
// rounding error from the /100 conversion (170 cm, 72.25 kg is exactly 25).
func BMI(heightCM, weightKG float64) float64 {
	return weightKG * 10000 / (heightCM * heightCM)
}

// Overweight returns 1 when the BMI is strictly above OverweightBMI.
func Overweight(heightCM, weightKG float64) int {
	if BMI(heightCM, weightKG) > OverweightBMI {
		return 1
	}
	return 0
}

// Binarize maps an ordinal lab level to 0 (normal, level 1) or 1 (above normal).
func Binarize(level int) int {
	if level > 1 {
		return 1
	}
	return 0
}

// Derive builds the derived table. raw is left untouched; rows keep their order.
// A row whose height or weight is not a positive finite number is rejected,
// since its BMI would be undefined.
func Derive(raw *exam.RawTable) (*exam.Table, error) {
	if raw == nil {
		return nil, errors.InvalidInput("no examination table")
	}

	rows := make([]exam.Record, len(raw.Rows))
	for i, src := range raw.Rows {
		if err := validateBody(src); err != nil {
			return nil, err
		}

		e := src
		e.Cholesterol = Binarize(src.Cholesterol)
		e.Gluc = Binarize(src.Gluc)
		rows[i] = exam.Record{
			Examination: e,
			Overweight:  Overweight(src.Height, src.Weight),
		}
	}

	return &exam.Table{Source: raw.Source, Rows: rows}, nil
}

func validateBody(e exam.Examination) error {
	if !positiveFinite(e.Height) {
		return errors.InvalidInput(fmt.Sprintf("record %d: height must be a positive number, got %v", e.ID, e.Height))
	}
	if !positiveFinite(e.Weight) {
		return errors.InvalidInput(fmt.Sprintf("record %d: weight must be a positive number, got %v", e.ID, e.Weight))
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
