package testkit

import (
	"fmt"
	"os"
	"path/filepath"

	"medviz/domain/exam"
)

// Fixtures with hand-checked expectations, shared by package tests.

// BandFixture returns ten rows where each of the five cohort predicates
// rejects exactly one distinct row under linear quantiles:
// row 0 is the shortest, row 9 the tallest, row 1 the lightest, row 8 the
// heaviest and row 2 has ap_lo above ap_hi. Rows 3 to 7 survive.
func BandFixture() *exam.RawTable {
	heights := []float64{150, 155, 160, 165, 170, 175, 180, 185, 190, 200}
	weights := []float64{70, 40, 72, 74, 76, 78, 80, 82, 120, 84}

	rows := make([]exam.Examination, len(heights))
	for i := range rows {
		rows[i] = exam.Examination{
			ID:          int64(i),
			Age:         15000 + 300*i,
			Gender:      1 + i%2,
			Height:      heights[i],
			Weight:      weights[i],
			APHi:        120,
			APLo:        80,
			Cholesterol: 1 + i%3,
			Gluc:        1 + (i+1)%3,
			Smoke:       i % 2,
			Alco:        (i / 2) % 2,
			Active:      (i + 1) % 2,
			Cardio:      (i / 3) % 2,
		}
	}
	rows[2].APHi, rows[2].APLo = 120, 130
	return &exam.RawTable{Source: "band-fixture", Rows: rows}
}

// BandFixtureSurvivors are the ids BandFixture keeps.
var BandFixtureSurvivors = []int64{3, 4, 5, 6, 7}

// LadderFixture returns five evenly spaced, valid rows: heights 160..200,
// weights 55..95, systolic 120..160 and diastolic 80..100.
func LadderFixture() *exam.RawTable {
	rows := make([]exam.Examination, 5)
	for i := range rows {
		rows[i] = exam.Examination{
			ID:          int64(i + 1),
			Age:         16000 + 1000*i,
			Gender:      1 + i%2,
			Height:      float64(160 + 10*i),
			Weight:      float64(55 + 10*i),
			APHi:        120 + 10*i,
			APLo:        80 + 5*i,
			Cholesterol: 1 + i%3,
			Gluc:        1 + i%2,
			Smoke:       i % 2,
			Alco:        (i + 1) % 2,
			Active:      1,
			Cardio:      i % 2,
		}
	}
	return &exam.RawTable{Source: "ladder-fixture", Rows: rows}
}

// WriteCSVFile writes table to dir/name and returns the path
func WriteCSVFile(dir, name string, table *exam.RawTable, delimiter rune) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, table, delimiter); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
