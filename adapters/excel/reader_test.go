package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medviz/domain/exam"
	"medviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const header = "id;age;gender;height;weight;ap_hi;ap_lo;cholesterol;gluc;smoke;alco;active;cardio"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadExaminations_SemicolonCSV(t *testing.T) {
	path := writeFile(t, "medical_examination.csv", header+"\n"+
		"0;18393;2;168;62.0;110;80;1;1;0;0;1;0\n"+
		"1;20228;1;156;85.0;140;90;3;1;0;0;1;1\n")

	table, err := ReadExaminations(DefaultReaderConfig(path))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, path, table.Source)

	first := table.Rows[0]
	assert.Equal(t, int64(0), first.ID)
	assert.Equal(t, 18393, first.Age)
	assert.Equal(t, 168.0, first.Height)
	assert.Equal(t, 62.0, first.Weight)
	assert.Equal(t, 110, first.APHi)
	assert.Equal(t, 80, first.APLo)
	assert.Equal(t, 3, table.Rows[1].Cholesterol)
	assert.Equal(t, 1, table.Rows[1].Cardio)
}

func TestReadExaminations_CommaCSVAndBlankLines(t *testing.T) {
	body := strings.ReplaceAll(header, ";", ",") + "\n" +
		"5,20000,1,170,70.5,120,80,2,2,1,0,1,1\n" +
		"\n"
	path := writeFile(t, "exams.csv", body)

	table, err := ReadExaminations(DefaultReaderConfig(path))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, 70.5, table.Rows[0].Weight)
	assert.Equal(t, 2, table.Rows[0].Gluc)
}

func TestReadExaminations_ExplicitDelimiter(t *testing.T) {
	body := strings.ReplaceAll(header, ";", "\t") + "\n" +
		"7\t20000\t1\t170\t70\t120\t80\t1\t1\t0\t0\t1\t0\n"
	path := writeFile(t, "exams.tsv", body)

	table, err := ReadExaminations(ReaderConfig{FilePath: path, Delimiter: '\t'})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, int64(7), table.Rows[0].ID)
}

func TestReadExaminations_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.xlsx")
	f := excelize.NewFile()
	cols := strings.Split(header, ";")
	headerRow := make([]interface{}, len(cols))
	for i, c := range cols {
		headerRow[i] = c
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &headerRow))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{3, 21000, 2, 180, 90, 130, 85, 1, 3, 0, 1, 0, 1}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadExaminations(DefaultReaderConfig(path))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, 180.0, table.Rows[0].Height)
	assert.Equal(t, 3, table.Rows[0].Gluc)
}

func TestReadExaminations_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{
			name: "missing columns",
			body: "id;age;height\n1;2;3\n",
			code: errors.CodeDataShape,
		},
		{
			name: "non numeric cell",
			body: header + "\n0;18393;2;tall;62;110;80;1;1;0;0;1;0\n",
			code: errors.CodeDataShape,
		},
		{
			name: "fractional ordinal",
			body: header + "\n0;18393;2;168;62;110;80;1.5;1;0;0;1;0\n",
			code: errors.CodeDataShape,
		},
		{
			name: "ragged row",
			body: header + "\n0;18393;2;168\n",
			code: errors.CodeDataShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.body)
			_, err := ReadExaminations(DefaultReaderConfig(path))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestReadExaminations_MissingFile(t *testing.T) {
	_, err := ReadExaminations(DefaultReaderConfig(filepath.Join(t.TempDir(), "nope.csv")))
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
}

func TestBindExaminations_NamesMissingColumns(t *testing.T) {
	data := &ExcelData{Headers: []string{exam.ColID, exam.ColAge}}
	_, err := BindExaminations(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "height")
	assert.Contains(t, err.Error(), "cardio")
	assert.NotContains(t, err.Error(), "age,")
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', SniffDelimiter("id;age"))
	assert.Equal(t, ',', SniffDelimiter("id,age"))
	assert.Equal(t, ',', SniffDelimiter("id"))
}
