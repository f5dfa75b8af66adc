package core

// errors.go defines the typed errors and notice codes surfaced by the
// engine. Matching and state conflicts are resolved locally; only
// required-field gaps and hook failures propagate to the caller.

import (
	"errors"
	"fmt"
	"strings"
)

// Notice codes emitted through SessionConfig.OnNotice.
const (
	// NoticeDuplicateMatch fires when assigning a field steals it from
	// another column; the previous column is reset to empty.
	NoticeDuplicateMatch = "MATCH101"
)

var (
	// ErrUnknownField is returned when a match targets a key that is
	// neither declared nor a previously created custom field.
	ErrUnknownField = errors.New("unknown field key")

	// ErrCustomFieldsDisabled is returned when a custom-prefixed match is
	// attempted while the session forbids custom fields.
	ErrCustomFieldsDisabled = errors.New("custom fields are disabled")
)

// UnmatchedFieldsError blocks a submit while required fields have no
// matched column. It carries the missing fields in declaration order so
// callers can list them in a confirmation prompt.
type UnmatchedFieldsError struct {
	Fields Fields
}

func (e *UnmatchedFieldsError) Error() string {
	keys := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		keys[i] = f.Key
	}
	return fmt.Sprintf("unmatched required fields: %s", strings.Join(keys, ", "))
}

// HookError wraps a failure of a caller-supplied validation hook. It aborts
// the submit entirely; no partial record set is returned.
type HookError struct {
	Stage string // "row" or "table"
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s validation hook failed: %v", e.Stage, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
