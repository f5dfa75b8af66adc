package ingest

// clean.go handles the messy reality of exported spreadsheet data: invalid
// UTF-8 sequences, Excel formula prefixes, and stray quoting.

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"
)

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so the CSV reader never chokes on a bad export.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// parseCSV reads all records, tolerating ragged rows and lazy quoting.
func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// CleanCell removes common export artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// isEmptyRow reports whether every cell is blank after trimming.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
