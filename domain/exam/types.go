// Package exam holds the medical examination schema: raw rows as read from
// the source table, derived rows with the risk indicators, and the long-form
// feature rows used by the categorical view.
package exam

// Column names of the source table, in file order.
const (
	ColID          = "id"
	ColAge         = "age"
	ColGender      = "gender"
	ColHeight      = "height"
	ColWeight      = "weight"
	ColAPHi        = "ap_hi"
	ColAPLo        = "ap_lo"
	ColCholesterol = "cholesterol"
	ColGluc        = "gluc"
	ColSmoke       = "smoke"
	ColAlco        = "alco"
	ColActive      = "active"
	ColCardio      = "cardio"
	ColOverweight  = "overweight"
)

// RawColumns is the required schema of the source table.
var RawColumns = []string{
	ColID, ColAge, ColGender, ColHeight, ColWeight, ColAPHi, ColAPLo,
	ColCholesterol, ColGluc, ColSmoke, ColAlco, ColActive, ColCardio,
}

// DerivedColumns is the schema of a derived row; every column is numeric.
var DerivedColumns = append(append([]string(nil), RawColumns...), ColOverweight)

// Features are the binary risk factors compared across cardio status, in
// the order they appear on the categorical view's x axis.
var Features = []string{ColActive, ColAlco, ColCholesterol, ColGluc, ColOverweight, ColSmoke}

// Examination is one patient row as read from the source table.
// Cholesterol and Gluc carry the original ordinal level (1 normal, 2 above
// normal, 3 well above normal).
type Examination struct {
	ID          int64
	Age         int // days
	Gender      int
	Height      float64 // cm
	Weight      float64 // kg
	APHi        int
	APLo        int
	Cholesterol int
	Gluc        int
	Smoke       int
	Alco        int
	Active      int
	Cardio      int
}

// Record is a derived row: cholesterol and gluc are binarized (0 normal,
// 1 above normal) and Overweight is attached.
type Record struct {
	Examination
	Overweight int
}

// RawTable is the source table bound to the examination schema.
type RawTable struct {
	Source string
	Rows   []Examination
}

// Len returns the row count
func (t *RawTable) Len() int { return len(t.Rows) }

// Table is the derived table consumed by both views. It is never mutated
// after derivation.
type Table struct {
	Source string
	Rows   []Record
}

// Len returns the row count
func (t *Table) Len() int { return len(t.Rows) }

// Column returns a copy of the named derived column as float64 values.
func (t *Table) Column(name string) ([]float64, bool) {
	return Column(t.Rows, name)
}

// Column extracts the named derived column from rows.
func Column(rows []Record, name string) ([]float64, bool) {
	idx := columnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(rows))
	for i := range rows {
		out[i] = rows[i].Values()[idx]
	}
	return out, true
}

func columnIndex(name string) int {
	for i, c := range DerivedColumns {
		if c == name {
			return i
		}
	}
	return -1
}

// Values returns the row's fields in DerivedColumns order.
func (r Record) Values() []float64 {
	return []float64{
		float64(r.ID), float64(r.Age), float64(r.Gender), r.Height, r.Weight,
		float64(r.APHi), float64(r.APLo), float64(r.Cholesterol), float64(r.Gluc),
		float64(r.Smoke), float64(r.Alco), float64(r.Active), float64(r.Cardio),
		float64(r.Overweight),
	}
}

// Feature returns the value of one of Features and whether the name is known.
func (r Record) Feature(name string) (int, bool) {
	switch name {
	case ColActive:
		return r.Active, true
	case ColAlco:
		return r.Alco, true
	case ColCholesterol:
		return r.Cholesterol, true
	case ColGluc:
		return r.Gluc, true
	case ColOverweight:
		return r.Overweight, true
	case ColSmoke:
		return r.Smoke, true
	}
	return 0, false
}

// FeatureRow is one long-form (patient, feature) pair.
type FeatureRow struct {
	Cardio  int
	Feature string
	Value   int
}
