package core

import "testing"

// ============================================================================
// NormalizeTableData Tests
// ============================================================================

func TestNormalizePreservesRowCount(t *testing.T) {
	fields := nameAgeFields()
	cols := columnsFromHeader("Name", "Age")
	cols[0] = matchColumn(cols[0], &fields[0], nil, nil)

	rows := []RawRow{{"Alice", "30"}, {"Bob", "25"}, {"", ""}}
	records := NormalizeTableData(cols, rows, fields)

	if len(records) != len(rows) {
		t.Errorf("expected %d records, got %d", len(rows), len(records))
	}
	for i, rec := range records {
		if rec.RowIndex != i {
			t.Errorf("record %d has row index %d", i, rec.RowIndex)
		}
	}
}

func TestNormalizeTextRoundTrip(t *testing.T) {
	fields := nameAgeFields()
	cols := columnsFromHeader("Name")
	cols[0] = matchColumn(cols[0], &fields[0], nil, nil)

	records := NormalizeTableData(cols, []RawRow{{"Alice"}}, fields)

	if got := records[0].Values["name"]; got != "Alice" {
		t.Errorf("expected %q, got %v", "Alice", got)
	}
}

func TestNormalizeSkipsIgnoredAndEmptyColumns(t *testing.T) {
	fields := nameAgeFields()
	cols := columnsFromHeader("Name", "Age", "Junk")
	cols[0] = matchColumn(cols[0], &fields[0], nil, nil)
	cols[1] = ignoreColumn(cols[1])
	// cols[2] stays empty

	records := NormalizeTableData(cols, []RawRow{{"Alice", "30", "x"}}, fields)

	if len(records[0].Values) != 1 {
		t.Errorf("expected only the matched column in output, got %v", records[0].Values)
	}
	if _, ok := records[0].Values["age"]; ok {
		t.Error("ignored column leaked into output")
	}
}

func TestNormalizeCheckbox(t *testing.T) {
	field := Field{Key: "active", Label: "Active", Type: FieldCheckbox}
	cols := columnsFromHeader("Active")
	cols[0] = matchColumn(cols[0], &field, nil, nil)

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "yes is true", raw: "yes", want: true},
		{name: "TRUE is true", raw: "TRUE", want: true},
		{name: "1 is true", raw: "1", want: true},
		{name: "arbitrary text is true", raw: "sure", want: true},
		{name: "false is false", raw: "false", want: false},
		{name: "No is false", raw: "No", want: false},
		{name: "0 is false", raw: "0", want: false},
		{name: "off is false", raw: "off", want: false},
		{name: "empty is false", raw: "", want: false},
		{name: "whitespace is false", raw: "   ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := NormalizeTableData(cols, []RawRow{{tt.raw}}, Fields{field})
			if got := records[0].Values["active"]; got != tt.want {
				t.Errorf("ToBool(%q) via normalize = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeSelectSubstitutesMappedValues(t *testing.T) {
	field := Field{
		Key:   "gender",
		Label: "Gender",
		Type:  FieldSelect,
		Options: []SelectOption{
			{Label: "Male", Value: "M"},
			{Label: "Female", Value: "F"},
		},
	}
	sample := []RawRow{{"Male"}, {"Female"}, {"Male"}}
	cols := columnsFromHeader("Gender")
	cols[0] = matchColumn(cols[0], &field, sample, optionResolver(2))

	rows := []RawRow{{"Male"}, {"Female"}, {"Male"}, {"Unknown"}}
	records := NormalizeTableData(cols, rows, Fields{field})

	if got := records[0].Values["gender"]; got != "M" {
		t.Errorf("row 0: expected M, got %v", got)
	}
	if got := records[1].Values["gender"]; got != "F" {
		t.Errorf("row 1: expected F, got %v", got)
	}
	if got := records[2].Values["gender"]; got != "M" {
		t.Errorf("row 2: expected M, got %v", got)
	}
	// Raw values with no sub-match leave the field absent for that row.
	if _, ok := records[3].Values["gender"]; ok {
		t.Errorf("row 3: expected absent value for unmapped entry, got %v", records[3].Values["gender"])
	}
}

func TestNormalizeSelectExactEquality(t *testing.T) {
	field := Field{Key: "status", Label: "Status", Type: FieldSelect}
	cols := columnsFromHeader("Status")
	cols[0] = Column{
		Index:          0,
		Header:         "Status",
		Type:           ColumnMatchedSelectOptions,
		Value:          "status",
		MatchedOptions: []MatchedOption{{Entry: "Open", Value: "open"}},
	}

	// " Open " and "open" are not exact matches for the entry "Open".
	records := NormalizeTableData(cols, []RawRow{{"Open"}, {" Open "}, {"open"}}, Fields{field})

	if got := records[0].Values["status"]; got != "open" {
		t.Errorf("exact entry should map, got %v", got)
	}
	if _, ok := records[1].Values["status"]; ok {
		t.Error("padded entry should not map")
	}
	if _, ok := records[2].Values["status"]; ok {
		t.Error("case-variant entry should not map")
	}
}

func TestNormalizeShortRows(t *testing.T) {
	fields := nameAgeFields()
	cols := columnsFromHeader("Name", "Age")
	cols[0] = matchColumn(cols[0], &fields[0], nil, nil)
	cols[1] = matchColumn(cols[1], &fields[1], nil, nil)

	records := NormalizeTableData(cols, []RawRow{{"Alice"}}, fields)

	if got := records[0].Values["age"]; got != "" {
		t.Errorf("expected empty string for missing cell, got %v", got)
	}
}

// ============================================================================
// ToBool Tests
// ============================================================================

func TestToBool(t *testing.T) {
	if ToBool("anything") != true {
		t.Error("non-empty non-falsy value should be true")
	}
	if ToBool(" FALSE ") != false {
		t.Error("falsy check should trim and lowercase")
	}
}
