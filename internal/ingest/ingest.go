// Package ingest converts uploaded spreadsheet files into the raw rows the
// matching engine consumes. It is a boundary collaborator: the core engine
// never parses file formats itself.
//
// Both readers cap the number of rows they return to avoid exhausting
// memory on very large files, drop fully blank rows, and deliver every cell
// as its string rendering.
package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/SheetImport/internal/core"
	"github.com/xuri/excelize/v2"
)

// DefaultMaxRows bounds how many rows are read from a file when the caller
// does not specify a limit.
const DefaultMaxRows = 100

// utf8BOM is the byte order mark some exports prepend to CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile parses an uploaded file by extension: .xlsx (and friends) go
// through the workbook reader, everything else is treated as CSV.
func ReadFile(name string, data []byte, sheet string, maxRows int) ([]core.RawRow, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ReadWorkbook(data, sheet, maxRows)
	default:
		return ReadCSV(data, maxRows)
	}
}

// ReadWorkbook reads the named sheet of an XLSX workbook (the first sheet
// when sheet is empty) into raw rows.
func ReadWorkbook(data []byte, sheet string, maxRows int) ([]core.RawRow, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("parse workbook: read sheet %q: %w", sheet, err)
	}

	return collectRows(raw, maxRows)
}

// ReadCSV reads CSV data into raw rows. Input is BOM-stripped and invalid
// UTF-8 is replaced before parsing; ragged rows are tolerated.
func ReadCSV(data []byte, maxRows int) ([]core.RawRow, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	data = sanitizeUTF8(data)

	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	return collectRows(records, maxRows)
}

// Split separates the header row from the data rows. The first non-blank
// row is the header; callers that let the user pick a different header row
// slice the result themselves.
func Split(rows []core.RawRow) (core.RawRow, []core.RawRow, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data rows")
	}
	header := make(core.RawRow, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = CleanCell(cell)
	}
	return header, rows[1:], nil
}

// collectRows converts parsed records to raw rows, dropping blank rows and
// stopping at maxRows.
func collectRows(records [][]string, maxRows int) ([]core.RawRow, error) {
	var rows []core.RawRow
	for _, rec := range records {
		if isEmptyRow(rec) {
			continue
		}
		rows = append(rows, core.RawRow(rec))
		if len(rows) >= maxRows {
			break
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return rows, nil
}
