package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"medviz/domain/exam"
)

// ExamGeneratorConfig configures the synthetic examination generator.
// InvertedBPRate is the share of rows with ap_lo > ap_hi; ExtremeHeightRate
// the share far outside the usual height range.
type ExamGeneratorConfig struct {
	PatientCount      int     `json:"patient_count"`
	CardioRate        float64 `json:"cardio_rate"`
	InvertedBPRate    float64 `json:"inverted_bp_rate"`
	ExtremeHeightRate float64 `json:"extreme_height_rate"`
	Seed              int64   `json:"seed"`
}

// DefaultExamConfig returns sensible defaults for examination data generation
func DefaultExamConfig() ExamGeneratorConfig {
	return ExamGeneratorConfig{
		PatientCount:      1000,
		CardioRate:        0.5,
		InvertedBPRate:    0.02,
		ExtremeHeightRate: 0.01,
		Seed:              42,
	}
}

// ExamGenerator generates reproducible examination rows
type ExamGenerator struct {
	config ExamGeneratorConfig
	rng    *rand.Rand
}

// NewExamGenerator creates a new examination generator
func NewExamGenerator(config ExamGeneratorConfig) *ExamGenerator {
	return &ExamGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces PatientCount rows. Risk factors lean towards cardio
// patients so the figures have something to show.
func (g *ExamGenerator) Generate() *exam.RawTable {
	rows := make([]exam.Examination, g.config.PatientCount)
	for i := range rows {
		rows[i] = g.patient(int64(i))
	}
	return &exam.RawTable{Source: fmt.Sprintf("synthetic(seed=%d)", g.config.Seed), Rows: rows}
}

func (g *ExamGenerator) patient(id int64) exam.Examination {
	cardio := g.bernoulli(g.config.CardioRate)
	gender := 1 + g.rng.Intn(2)

	meanHeight := 161.0
	if gender == 2 {
		meanHeight = 170.0
	}
	height := math.Round(meanHeight + g.rng.NormFloat64()*7)
	if g.rng.Float64() < g.config.ExtremeHeightRate {
		if g.rng.Intn(2) == 0 {
			height = 55 + float64(g.rng.Intn(60))
		} else {
			height = 200 + float64(g.rng.Intn(50))
		}
	}

	weight := math.Round((72+6*float64(cardio)+g.rng.NormFloat64()*13)*10) / 10
	if weight < 35 {
		weight = 35
	}

	apHi := int(math.Round(122 + 12*float64(cardio) + g.rng.NormFloat64()*14))
	apLo := int(math.Round(80 + 6*float64(cardio) + g.rng.NormFloat64()*8))
	if g.rng.Float64() < g.config.InvertedBPRate {
		apHi, apLo = apLo, apHi+g.rng.Intn(20)+1
	}

	chol := 1
	if g.bernoulli(0.15 + 0.15*float64(cardio)) == 1 {
		chol = 2 + g.rng.Intn(2)
	}
	gluc := 1
	if g.bernoulli(0.10+0.08*float64(cardio)) == 1 {
		gluc = 2 + g.rng.Intn(2)
	}

	return exam.Examination{
		ID:          id,
		Age:         10800 + g.rng.Intn(12000) + 1500*cardio,
		Gender:      gender,
		Height:      height,
		Weight:      weight,
		APHi:        apHi,
		APLo:        apLo,
		Cholesterol: chol,
		Gluc:        gluc,
		Smoke:       g.bernoulli(0.09),
		Alco:        g.bernoulli(0.05),
		Active:      g.bernoulli(0.82 - 0.04*float64(cardio)),
		Cardio:      cardio,
	}
}

func (g *ExamGenerator) bernoulli(p float64) int {
	if g.rng.Float64() < p {
		return 1
	}
	return 0
}

// WriteCSV writes table in the source schema, header first
func WriteCSV(w io.Writer, table *exam.RawTable, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	if err := cw.Write(exam.RawColumns); err != nil {
		return err
	}
	for _, r := range table.Rows {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Age),
			strconv.Itoa(r.Gender),
			strconv.FormatFloat(r.Height, 'f', -1, 64),
			strconv.FormatFloat(r.Weight, 'f', 1, 64),
			strconv.Itoa(r.APHi),
			strconv.Itoa(r.APLo),
			strconv.Itoa(r.Cholesterol),
			strconv.Itoa(r.Gluc),
			strconv.Itoa(r.Smoke),
			strconv.Itoa(r.Alco),
			strconv.Itoa(r.Active),
			strconv.Itoa(r.Cardio),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
