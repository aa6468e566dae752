package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/medhive/pharmacy-admin/internal/models"
)

var (
	// ErrEmptyInput means the source file has no rows at all. This is fatal
	// for a run; there is nothing to mitigate.
	ErrEmptyInput = errors.New("input file contains no rows")
)

var spreadsheetExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
}

// DetectTable inspects raw file bytes plus the declared filename and decodes
// them into a RawTable, reporting the structural dialect it settled on.
// Spreadsheet containers are routed by extension; everything else is treated
// as delimited text.
func DetectTable(data []byte, filename string) (*models.RawTable, models.Dialect, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if spreadsheetExts[ext] {
		return readSpreadsheet(data)
	}
	return readDelimited(data)
}

// readSpreadsheet decodes a spreadsheet container and exposes the first
// sheet (by document order) as the table.
func readSpreadsheet(data []byte) (*models.RawTable, models.Dialect, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, models.Dialect{}, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, models.Dialect{}, ErrEmptyInput
	}

	sheet := sheets[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, models.Dialect{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, models.Dialect{}, ErrEmptyInput
	}

	dialect := models.Dialect{Format: models.FormatSpreadsheet, Sheet: sheet}
	return &models.RawTable{Rows: rows}, dialect, nil
}

// readDelimited decodes UTF-8 text, picking tab or comma by whichever occurs
// more often in the first line. Quoted fields follow standard CSV quoting: a
// doubled quote inside a quoted field is a literal quote, and a delimiter
// inside a quoted field does not split.
func readDelimited(data []byte) (*models.RawTable, models.Dialect, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, models.Dialect{}, ErrEmptyInput
	}

	delimiter := detectDelimiter(firstLine(string(data)))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, models.Dialect{}, fmt.Errorf("parsing delimited text: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.Dialect{}, ErrEmptyInput
	}

	dialect := models.Dialect{Format: models.FormatDelimited, Delimiter: string(delimiter)}
	return &models.RawTable{Rows: rows}, dialect, nil
}

// detectDelimiter compares tab vs comma counts in the header line. Ties go
// to comma, which also covers single-column files.
func detectDelimiter(line string) rune {
	if strings.Count(line, "\t") > strings.Count(line, ",") {
		return '\t'
	}
	return ','
}

func firstLine(text string) string {
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		return text[:idx]
	}
	return text
}
