package excel

// ReaderConfig holds configuration for a tabular data source
type ReaderConfig struct {
	FilePath  string `json:"file_path"`
	Delimiter rune   `json:"delimiter"`  // 0 sniffs ';' or ',' from the header line
	SheetName string `json:"sheet_name"` // xlsx only; empty means the first sheet
}

// DefaultReaderConfig returns defaults for the examination table
func DefaultReaderConfig(path string) ReaderConfig {
	return ReaderConfig{FilePath: path}
}
