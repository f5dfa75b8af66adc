package core

// FieldType represents the value type of a schema field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldCheckbox
	FieldSelect
	FieldSelectOptions
)

// String returns a human-readable name for a field type.
func (ft FieldType) String() string {
	switch ft {
	case FieldText:
		return "text"
	case FieldCheckbox:
		return "checkbox"
	case FieldSelect:
		return "select"
	case FieldSelectOptions:
		return "selectOptions"
	default:
		return "unknown"
	}
}

// Enumerated reports whether the field type carries an allowed-value list
// and therefore requires per-value sub-matching.
func (ft FieldType) Enumerated() bool {
	return ft == FieldSelect || ft == FieldSelectOptions
}

// SelectOption is one allowed value of an enumerated field.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field defines one entry of the target schema the user maps columns onto.
// Fields are immutable once declared; the engine may synthesize additional
// custom fields at runtime (see CustomFieldTemplate).
type Field struct {
	Key      string         `json:"key"`   // Unique identifier, used as record property
	Label    string         `json:"label"` // Display name, target of fuzzy header matching
	Required bool           `json:"required"`
	Type     FieldType      `json:"type"`
	Options  []SelectOption `json:"options,omitempty"` // Allowed values for enumerated types
}

// Fields is an ordered field schema.
type Fields []Field

// ByKey returns the field with the given key, or false if absent.
func (fs Fields) ByKey(key string) (Field, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// CustomFieldTemplate seeds fields synthesized from unmatched column headers.
// The zero value produces plain text fields with no secondary classifiers.
type CustomFieldTemplate struct {
	Type FieldType // Value type for synthesized fields (default FieldText)

	// ColumnTypes lists secondary classifiers the user may pick for a
	// custom column via Session.SetColumnType. Empty means none offered.
	ColumnTypes []string
}

// RawRow is one row of primitive cell values as delivered by the ingestion
// boundary. Numeric and blank cells arrive as their string rendering.
type RawRow []string

// Cell returns the value at position i, or "" when the row is short.
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// CellError is a single validation error attached to a record field.
type CellError struct {
	FieldKey string `json:"fieldKey"`
	Kind     string `json:"kind"` // "error", "warning", or "info"
	Message  string `json:"message"`
}

// Record is one normalized output row: field keys mapped to coerced values,
// plus any validation errors attached by hooks.
type Record struct {
	RowIndex int            `json:"rowIndex"`
	Values   map[string]any `json:"values"`
	Errors   []CellError    `json:"errors,omitempty"`
}

// RowHook validates a single record. It may return validation errors to
// attach to the record. A non-nil Go error is treated as a hook failure and
// aborts the submit entirely.
type RowHook func(rec Record, fields Fields) ([]CellError, error)

// TableHook validates the whole record set (cross-row rules such as
// uniqueness). Returned errors are keyed by row index. A non-nil Go error
// aborts the submit entirely.
type TableHook func(recs []Record, fields Fields) (map[int][]CellError, error)

// Notice is a non-fatal, user-facing message emitted during column
// mutations, e.g. when a duplicate assignment is auto-resolved.
type Notice struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	ColumnIndex int    `json:"columnIndex"`
}

// ColumnsChangedFunc receives the full column set after every committed
// mutation and once after initialization.
type ColumnsChangedFunc func(cols []Column)

// NoticeFunc receives non-fatal notices as they are emitted.
type NoticeFunc func(n Notice)

// SubmitResult is the final output of a successful submit.
type SubmitResult struct {
	Records []Record `json:"records"`
	Columns []Column `json:"columns"`
}
