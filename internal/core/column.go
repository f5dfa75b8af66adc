package core

// column.go owns the per-column state machine.
//
// Each header position gets one Column. The Type tag discriminates the six
// lifecycle states; the remaining attributes are only meaningful in the
// states noted on them. Transitions are pure functions returning a new
// Column value, never mutating the input.

import "strings"

// ColumnType is the lifecycle state of a column.
type ColumnType int

const (
	ColumnEmpty ColumnType = iota
	ColumnIgnored
	ColumnMatched
	ColumnMatchedCheckbox
	ColumnMatchedSelect        // Enumerated match with at least one unresolved sub-entry
	ColumnMatchedSelectOptions // Enumerated match with every sub-entry resolved
)

// String returns a human-readable name for a column state.
func (ct ColumnType) String() string {
	switch ct {
	case ColumnEmpty:
		return "empty"
	case ColumnIgnored:
		return "ignored"
	case ColumnMatched:
		return "matched"
	case ColumnMatchedCheckbox:
		return "matchedCheckbox"
	case ColumnMatchedSelect:
		return "matchedSelect"
	case ColumnMatchedSelectOptions:
		return "matchedSelectOptions"
	default:
		return "unknown"
	}
}

// Matched reports whether the state carries a field assignment.
func (ct ColumnType) Matched() bool {
	switch ct {
	case ColumnMatched, ColumnMatchedCheckbox, ColumnMatchedSelect, ColumnMatchedSelectOptions:
		return true
	}
	return false
}

// MatchedOption pairs one distinct raw cell value observed in an enumerated
// column with the target option value it maps to ("" while unresolved).
type MatchedOption struct {
	Entry string `json:"entry"`
	Value string `json:"value,omitempty"`
}

// Column is one raw header position with its current matching state.
type Column struct {
	Index  int        `json:"index"`  // 0-based position, stable for the session
	Header string     `json:"header"` // Original raw label, possibly empty
	Type   ColumnType `json:"type"`

	// Value is the assigned field key. Matched states only.
	Value string `json:"value,omitempty"`

	// MatchedOptions holds per-distinct-value sub-matches. Select states only.
	MatchedOptions []MatchedOption `json:"matchedOptions,omitempty"`

	// SelectedType is the secondary classifier picked for a custom field
	// whose template offers more than one. Independent of the primary state.
	SelectedType string `json:"selectedType,omitempty"`
}

// newColumn creates the initial empty column for a header position.
func newColumn(index int, header string) Column {
	return Column{Index: index, Header: header, Type: ColumnEmpty}
}

// matchColumn assigns a field to a column and returns the resulting state.
// A nil field clears the assignment (the explicit unassign / revert path).
// For enumerated fields the sample rows seed one sub-entry per distinct raw
// value; when resolver is non-nil each entry is auto-resolved through it.
func matchColumn(col Column, field *Field, sample []RawRow, resolver func(raw string, opts []SelectOption) string) Column {
	if field == nil {
		return Column{Index: col.Index, Header: col.Header, Type: ColumnEmpty}
	}

	next := Column{
		Index:        col.Index,
		Header:       col.Header,
		Value:        field.Key,
		SelectedType: col.SelectedType,
	}

	switch {
	case field.Type == FieldCheckbox:
		next.Type = ColumnMatchedCheckbox
	case field.Type.Enumerated():
		next.MatchedOptions = buildMatchedOptions(col.Index, sample, field.Options, resolver)
		if subMatchesComplete(next.MatchedOptions) {
			next.Type = ColumnMatchedSelectOptions
		} else {
			next.Type = ColumnMatchedSelect
		}
	default:
		next.Type = ColumnMatched
	}
	return next
}

// ignoreColumn moves a column to the ignored state, clearing any assignment.
func ignoreColumn(col Column) Column {
	return Column{Index: col.Index, Header: col.Header, Type: ColumnIgnored}
}

// setSubColumn updates exactly one sub-entry and recomputes completeness:
// the column is matchedSelectOptions iff every entry has a non-empty value.
func setSubColumn(col Column, entry, value string) Column {
	options := make([]MatchedOption, len(col.MatchedOptions))
	for i, opt := range col.MatchedOptions {
		if opt.Entry == entry {
			opt.Value = value
		}
		options[i] = opt
	}

	next := col
	next.MatchedOptions = options
	if subMatchesComplete(options) {
		next.Type = ColumnMatchedSelectOptions
	} else {
		next.Type = ColumnMatchedSelect
	}
	return next
}

// buildMatchedOptions collects the distinct raw values in the column's
// sample, in first-seen order, and optionally resolves each through the
// supplied resolver.
func buildMatchedOptions(index int, sample []RawRow, opts []SelectOption, resolver func(raw string, opts []SelectOption) string) []MatchedOption {
	seen := make(map[string]bool)
	var matched []MatchedOption

	for _, row := range sample {
		raw := row.Cell(index)
		if strings.TrimSpace(raw) == "" || seen[raw] {
			continue
		}
		seen[raw] = true

		entry := MatchedOption{Entry: raw}
		if resolver != nil {
			entry.Value = resolver(raw, opts)
		}
		matched = append(matched, entry)
	}
	return matched
}

// subMatchesComplete reports whether every sub-entry has been resolved.
// Vacuously true for an empty entry list.
func subMatchesComplete(options []MatchedOption) bool {
	for _, opt := range options {
		if opt.Value == "" {
			return false
		}
	}
	return true
}
