package excel

// RawRowData represents a row of raw cell data as string key-value pairs
type RawRowData map[string]string

// ExcelData represents a complete tabular file, regardless of its format
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
	Source  string       // Path the data was read from
}

// HasColumn reports whether header is present
func (d *ExcelData) HasColumn(header string) bool {
	for _, h := range d.Headers {
		if h == header {
			return true
		}
	}
	return false
}
