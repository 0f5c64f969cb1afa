package analysis

import (
	"testing"

	"medviz/domain/exam"
	"medviz/internal/derive"
	"medviz/internal/testkit"

	"github.com/stretchr/testify/require"
)

func deriveRows(t *testing.T, raw *exam.RawTable) []exam.Record {
	t.Helper()
	table, err := derive.Derive(raw)
	require.NoError(t, err)
	return table.Rows
}

func syntheticRows(t *testing.T, n int) []exam.Record {
	t.Helper()
	config := testkit.DefaultExamConfig()
	config.PatientCount = n
	return deriveRows(t, testkit.NewExamGenerator(config).Generate())
}
