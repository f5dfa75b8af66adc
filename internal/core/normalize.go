package core

// normalize.go converts the final column assignments plus the raw rows into
// the output record set. It handles the messy reality of user-provided
// spreadsheet data:
//   - Checkbox columns accept yes/no, true/false, 1/0, on/off
//   - Enumerated columns substitute the sub-matched target value
//   - Ignored and unmatched columns contribute nothing
//
// Rows come out in their original order and the output length always equals
// the input length; dropping or filtering rows is a downstream concern.

import "strings"

// FalsyValues are the strings (lowercased, trimmed) a checkbox column treats
// as false. Anything else non-empty coerces to true. Package-level so
// deployments can extend it.
var FalsyValues = map[string]bool{
	"false": true,
	"no":    true,
	"0":     true,
	"off":   true,
}

// NormalizeTableData produces one record per raw row from the matched
// columns. Enumerated values are substituted through the column's
// sub-matches by exact raw-string equality; unmapped raw values leave the
// field absent from the record for that row.
func NormalizeTableData(cols []Column, rows []RawRow, fields Fields) []Record {
	records := make([]Record, len(rows))

	for i, row := range rows {
		rec := Record{RowIndex: i, Values: make(map[string]any)}

		for _, col := range cols {
			if !col.Type.Matched() {
				continue
			}

			field, ok := fields.ByKey(col.Value)
			if !ok {
				continue
			}
			raw := row.Cell(col.Index)

			switch {
			case field.Type == FieldCheckbox:
				rec.Values[field.Key] = ToBool(raw)
			case field.Type.Enumerated():
				if value, ok := lookupOption(col.MatchedOptions, raw); ok {
					rec.Values[field.Key] = value
				}
			default:
				rec.Values[field.Key] = raw
			}
		}

		records[i] = rec
	}
	return records
}

// ToBool coerces a raw cell value to a checkbox boolean. Empty cells and
// FalsyValues entries are false; any other value is true.
func ToBool(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return false
	}
	return !FalsyValues[s]
}

// lookupOption finds the sub-match for a raw value by exact equality.
// Returns false when the entry is absent or still unresolved.
func lookupOption(options []MatchedOption, raw string) (string, bool) {
	for _, opt := range options {
		if opt.Entry == raw {
			if opt.Value == "" {
				return "", false
			}
			return opt.Value, true
		}
	}
	return "", false
}
