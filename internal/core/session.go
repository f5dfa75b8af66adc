package core

// session.go owns the live state of one import: columns, custom fields, and
// the one-shot auto-map guard. All mutations run to completion before the
// next one is processed; a Session is not safe for concurrent use and
// callers that share one across goroutines must serialize access (the web
// layer does this per session).

import (
	"context"
	"fmt"
	"strings"
)

// CustomFieldPrefix marks a field key as a request to create a custom field
// rather than to select a declared one.
const CustomFieldPrefix = "__custom__:"

// Default tuning values, applied by NewSession when the config leaves them
// unset. An AutoMapDistance of 0 is meaningful (exact match only), so the
// default lives in the config layer rather than here.
const (
	DefaultAutoMapDistance = 2
	DefaultSampleSize      = 3
)

// cancelCheckInterval is how often (in rows) Submit checks for context
// cancellation while running hooks.
const cancelCheckInterval = 100

// SessionConfig carries the caller-supplied schema, policies, and callbacks
// for one import session.
type SessionConfig struct {
	// Fields is the declared target schema. May be empty only when
	// AllowCustomFields is set.
	Fields Fields

	// AutoMapHeaders enables the one-shot fuzzy header matching pass.
	AutoMapHeaders bool

	// AutoMapSelectValues additionally auto-resolves enumerated sub-entries,
	// both during auto-mapping and on manual assignment.
	AutoMapSelectValues bool

	// AutoMapDistance is the maximum edit distance for an auto-match.
	// 0 means exact matches only.
	AutoMapDistance int

	// SampleSize bounds how many leading rows seed enumerated sub-entries.
	// Values <= 0 fall back to DefaultSampleSize.
	SampleSize int

	// AllowCustomFields enables synthesizing fields from unmatched headers.
	AllowCustomFields bool

	// CustomTemplate seeds synthesized fields. Zero value means plain text.
	CustomTemplate CustomFieldTemplate

	// AllowInvalidSubmit permits Submit(force=true) to proceed while
	// required fields are unmatched. When false, Submit never succeeds with
	// unmatched required fields regardless of force.
	AllowInvalidSubmit bool

	RowHook   RowHook
	TableHook TableHook

	OnColumnsChanged ColumnsChangedFunc
	OnNotice         NoticeFunc
}

// Session is the in-memory state of one import. It lives for the duration
// of the flow and is discarded afterwards; nothing is persisted.
type Session struct {
	cfg      SessionConfig
	declared Fields
	custom   Fields
	rows     []RawRow
	columns  []Column

	// initialized guards the one-shot auto-map pass so a spurious second
	// Init is a no-op.
	initialized bool
}

// NewSession creates a session from a header row and data rows. The header
// row defines one column per position; data rows are normalized at submit
// time in their original order.
func NewSession(header RawRow, rows []RawRow, cfg SessionConfig) (*Session, error) {
	if len(cfg.Fields) == 0 && !cfg.AllowCustomFields {
		return nil, fmt.Errorf("session requires at least one field unless custom fields are allowed")
	}

	seen := make(map[string]bool, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if f.Key == "" {
			return nil, fmt.Errorf("field %q has empty key", f.Label)
		}
		if seen[f.Key] {
			return nil, fmt.Errorf("duplicate field key %q", f.Key)
		}
		seen[f.Key] = true
	}

	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}

	cols := make([]Column, len(header))
	for i, h := range header {
		cols[i] = newColumn(i, h)
	}

	return &Session{
		cfg:      cfg,
		declared: cfg.Fields,
		rows:     rows,
		columns:  cols,
	}, nil
}

// Init runs the one-shot auto-map pass: fuzzy header matching when
// AutoMapHeaders is set, then custom-field synthesis for leftover empty
// columns when AllowCustomFields is set. Re-invocation is a no-op. The
// columns-changed callback fires once at the end either way.
func (s *Session) Init() {
	if s.initialized {
		return
	}
	s.initialized = true

	if s.cfg.AutoMapHeaders {
		s.columns = autoMapColumns(s.columns, s.declared, s.sample(), s.cfg.AutoMapDistance, s.subResolver())
	}

	if s.cfg.AllowCustomFields {
		for i, col := range s.columns {
			if col.Type != ColumnEmpty || col.Header == "" {
				continue
			}
			// Two columns sharing a header would collide on the same key;
			// the first keeps it so the no-duplicate invariant holds.
			if fieldMatched(col.Header, s.columns) {
				continue
			}
			field := s.synthesizeField(col.Header)
			s.addCustomField(field)
			s.columns[i] = matchColumn(col, &field, s.sample(), s.subResolver())
		}
	}

	s.notifyColumns()
}

// Columns returns a copy of the current column set.
func (s *Session) Columns() []Column {
	cols := make([]Column, len(s.columns))
	for i, col := range s.columns {
		if col.MatchedOptions != nil {
			col.MatchedOptions = append([]MatchedOption(nil), col.MatchedOptions...)
		}
		cols[i] = col
	}
	return cols
}

// Rows returns the raw data rows backing the session.
func (s *Session) Rows() []RawRow {
	return s.rows
}

// EffectiveFields returns the declared fields plus any custom fields created
// during the session, deduped by key with first-write-wins.
func (s *Session) EffectiveFields() Fields {
	return mergeFields(s.declared, s.custom)
}

// Match assigns a field to a column. The value is either a declared/custom
// field key, or CustomFieldPrefix followed by a new key to synthesize a
// custom field on the fly. If another column already holds the field, that
// column is reverted to empty and a duplicate notice is emitted before the
// new assignment is committed.
func (s *Session) Match(columnIndex int, value string) error {
	col, err := s.column(columnIndex)
	if err != nil {
		return err
	}

	var field Field
	if key, isCustom := strings.CutPrefix(value, CustomFieldPrefix); isCustom {
		if !s.cfg.AllowCustomFields {
			return fmt.Errorf("%w: %q", ErrCustomFieldsDisabled, key)
		}
		if key == "" {
			return fmt.Errorf("empty custom field key")
		}
		s.addCustomField(s.synthesizeField(key))
		// First-write-wins: an earlier field with this key takes precedence.
		field, _ = s.EffectiveFields().ByKey(key)
	} else {
		var ok bool
		field, ok = s.EffectiveFields().ByKey(value)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, value)
		}
	}

	// Duplicate resolution: the most recently assigned column wins, the
	// previous holder is reset. Runs inside the same state update as the
	// new assignment, so no committed state ever shows two holders.
	for j, other := range s.columns {
		if j == columnIndex || !other.Type.Matched() || other.Value != field.Key {
			continue
		}
		s.columns[j] = matchColumn(other, nil, nil, nil)
		s.notice(Notice{
			Code:        NoticeDuplicateMatch,
			Message:     fmt.Sprintf("Field %q was already matched to column %d; that column has been reset.", field.Key, j),
			ColumnIndex: j,
		})
	}

	s.columns[columnIndex] = matchColumn(col, &field, s.sample(), s.subResolver())
	s.notifyColumns()
	return nil
}

// Ignore marks a column as ignored; it contributes nothing to the output.
func (s *Session) Ignore(columnIndex int) error {
	col, err := s.column(columnIndex)
	if err != nil {
		return err
	}
	s.columns[columnIndex] = ignoreColumn(col)
	s.notifyColumns()
	return nil
}

// Revert returns a column to the empty state, clearing any assignment,
// ignore flag, and sub-matches.
func (s *Session) Revert(columnIndex int) error {
	col, err := s.column(columnIndex)
	if err != nil {
		return err
	}
	s.columns[columnIndex] = matchColumn(col, nil, nil, nil)
	s.notifyColumns()
	return nil
}

// SetOptionMatch resolves one sub-entry of an enumerated column to a target
// option value (or back to unresolved with ""). Completeness is recomputed:
// the column is matchedSelectOptions iff every entry is resolved.
func (s *Session) SetOptionMatch(columnIndex int, entry, value string) error {
	col, err := s.column(columnIndex)
	if err != nil {
		return err
	}
	if col.Type != ColumnMatchedSelect && col.Type != ColumnMatchedSelectOptions {
		return fmt.Errorf("column %d is not matched to an enumerated field", columnIndex)
	}
	s.columns[columnIndex] = setSubColumn(col, entry, value)
	s.notifyColumns()
	return nil
}

// SetColumnType records the secondary classifier for a column matched to a
// synthesized custom field. Declared fields carry their type in the schema,
// so the classifier only applies to custom columns; the primary state is
// untouched.
func (s *Session) SetColumnType(columnIndex int, columnType string) error {
	col, err := s.column(columnIndex)
	if err != nil {
		return err
	}

	types := s.cfg.CustomTemplate.ColumnTypes
	if len(types) == 0 {
		return fmt.Errorf("no column types configured")
	}
	if !col.Type.Matched() || !s.isCustomField(col.Value) {
		return fmt.Errorf("column %d is not matched to a custom field", columnIndex)
	}
	valid := false
	for _, t := range types {
		if t == columnType {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown column type %q", columnType)
	}

	s.columns[columnIndex].SelectedType = columnType
	s.notifyColumns()
	return nil
}

// UnmatchedRequired returns the required fields with no matched column,
// in schema declaration order.
func (s *Session) UnmatchedRequired() Fields {
	return FindUnmatchedRequired(s.EffectiveFields(), s.columns)
}

// Submit normalizes the rows against the current column assignments and
// runs the validation hooks. When required fields are unmatched it fails
// with *UnmatchedFieldsError unless force is set and the session policy
// allows invalid submits. A hook returning an error aborts the submit with
// *HookError and no partial record set.
func (s *Session) Submit(ctx context.Context, force bool) (*SubmitResult, error) {
	unmatched := s.UnmatchedRequired()
	if len(unmatched) > 0 {
		if !force || !s.cfg.AllowInvalidSubmit {
			return nil, &UnmatchedFieldsError{Fields: unmatched}
		}
	}

	fields := s.EffectiveFields()
	records := NormalizeTableData(s.columns, s.rows, fields)

	records, err := runHooks(ctx, records, fields, s.cfg.RowHook, s.cfg.TableHook)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{Records: records, Columns: s.Columns()}, nil
}

// sample returns the leading rows used to seed enumerated sub-entries.
func (s *Session) sample() []RawRow {
	if len(s.rows) <= s.cfg.SampleSize {
		return s.rows
	}
	return s.rows[:s.cfg.SampleSize]
}

// subResolver returns the auto sub-match resolver, or nil when disabled.
func (s *Session) subResolver() func(raw string, opts []SelectOption) string {
	if !s.cfg.AutoMapSelectValues {
		return nil
	}
	return optionResolver(s.cfg.AutoMapDistance)
}

// synthesizeField builds a custom field from a header or user-typed key.
func (s *Session) synthesizeField(key string) Field {
	return Field{
		Key:   key,
		Label: key,
		Type:  s.cfg.CustomTemplate.Type,
	}
}

// isCustomField reports whether key names a field synthesized during this
// session, as opposed to one declared in the schema.
func (s *Session) isCustomField(key string) bool {
	_, ok := s.custom.ByKey(key)
	return ok
}

// addCustomField appends a custom field unless its key is already taken by
// a declared or custom field (first-write-wins).
func (s *Session) addCustomField(field Field) {
	if _, exists := s.EffectiveFields().ByKey(field.Key); exists {
		return
	}
	s.custom = append(s.custom, field)
}

func (s *Session) column(index int) (Column, error) {
	if index < 0 || index >= len(s.columns) {
		return Column{}, fmt.Errorf("column index %d out of range [0,%d)", index, len(s.columns))
	}
	return s.columns[index], nil
}

func (s *Session) notifyColumns() {
	if s.cfg.OnColumnsChanged != nil {
		s.cfg.OnColumnsChanged(s.Columns())
	}
}

func (s *Session) notice(n Notice) {
	if s.cfg.OnNotice != nil {
		s.cfg.OnNotice(n)
	}
}
