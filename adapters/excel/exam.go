package excel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"medviz/domain/exam"
	"medviz/internal/errors"
)

// ReadExaminations reads path and binds it to the examination schema
func ReadExaminations(config ReaderConfig) (*exam.RawTable, error) {
	data, err := NewDataReaderWithConfig(config).ReadData()
	if err != nil {
		return nil, err
	}
	return BindExaminations(data)
}

// BindExaminations converts string rows into typed examination rows. Every
// required column must be present and every cell must parse as a number.
func BindExaminations(data *ExcelData) (*exam.RawTable, error) {
	var missing []string
	for _, col := range exam.RawColumns {
		if !data.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.DataShape(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	rows := make([]exam.Examination, 0, len(data.Rows))
	for i, raw := range data.Rows {
		// +2: one for the header, one for 1-based line numbers
		line := i + 2
		p := cellParser{row: raw, line: line}
		row := exam.Examination{
			ID:          int64(p.integer(exam.ColID)),
			Age:         p.integer(exam.ColAge),
			Gender:      p.integer(exam.ColGender),
			Height:      p.number(exam.ColHeight),
			Weight:      p.number(exam.ColWeight),
			APHi:        p.integer(exam.ColAPHi),
			APLo:        p.integer(exam.ColAPLo),
			Cholesterol: p.integer(exam.ColCholesterol),
			Gluc:        p.integer(exam.ColGluc),
			Smoke:       p.integer(exam.ColSmoke),
			Alco:        p.integer(exam.ColAlco),
			Active:      p.integer(exam.ColActive),
			Cardio:      p.integer(exam.ColCardio),
		}
		if p.err != nil {
			return nil, p.err
		}
		rows = append(rows, row)
	}

	return &exam.RawTable{Source: data.Source, Rows: rows}, nil
}

// cellParser records the first parse failure so a row can be bound in one expression
type cellParser struct {
	row  RawRowData
	line int
	err  error
}

func (p *cellParser) number(col string) float64 {
	if p.err != nil {
		return 0
	}
	cell := p.row[col]
	if cell == "" {
		p.err = errors.DataShape(fmt.Sprintf("line %d: column %s is empty", p.line, col))
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		p.err = errors.DataShape(fmt.Sprintf("line %d: column %s: %q is not a number", p.line, col, cell))
		return 0
	}
	return v
}

func (p *cellParser) integer(col string) int {
	v := p.number(col)
	if p.err != nil {
		return 0
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		p.err = errors.DataShape(fmt.Sprintf("line %d: column %s: %v is not an integer", p.line, col, v))
		return 0
	}
	return int(v)
}
