package excel

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"medviz/internal"
	"medviz/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config   ReaderConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithConfig(DefaultReaderConfig(filePath))
}

// NewDataReaderWithConfig creates a reader with an explicit delimiter or sheet
func NewDataReaderWithConfig(config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	return &DataReader{config: config, fileType: fileType, logger: internal.DefaultLogger}
}

// WithLogger replaces the reader's logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); err != nil {
		return nil, errors.IOError(r.config.FilePath, err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

// readExcelData reads the configured (or first) sheet
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, errors.IOError(r.config.FilePath, err)
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.DataShape("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(errors.WithCode(errors.CodeDataShape, err), "failed to read sheet %s", sheet)
	}
	r.logger.Debug("[DataReader] Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, errors.IOError(r.config.FilePath, err)
	}
	defer file.Close()

	readStart := time.Now()
	rows, err := readDelimited(file, r.config.Delimiter)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readDelimited parses delimited text. A zero delimiter is sniffed from the
// header line: ';' when present, ',' otherwise.
func readDelimited(src io.Reader, delimiter rune) ([][]string, error) {
	br := bufio.NewReader(src)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to read header line")
	}
	if delimiter == 0 {
		delimiter = SniffDelimiter(header)
	}

	reader := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDataShape, err), "failed to parse delimited file")
	}
	return rows, nil
}

// SniffDelimiter picks ';' if the header line contains one, ',' otherwise
func SniffDelimiter(headerLine string) rune {
	if strings.ContainsRune(headerLine, ';') {
		return ';'
	}
	return ','
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) < 1 {
		return nil, errors.DataShape("file must have a header row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		// Spreadsheet exports sometimes prefix a UTF-8 BOM
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
		Source:  r.config.FilePath,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
