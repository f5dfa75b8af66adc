// Package core implements the column matching and normalization engine.
//
// This package is the heart of the importer, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Fields: The target schema. Declared fields come from the caller (or
//     the template registry); custom fields are synthesized at runtime from
//     unmatched column headers when enabled.
//   - Columns: One per header position, each carrying a state tag (empty,
//     ignored, matched, matchedCheckbox, matchedSelect, matchedSelectOptions)
//     plus the data relevant to that state. Transitions are pure functions
//     returning new Column values.
//   - Session: The main entry point. It owns the columns, the custom fields,
//     and the one-shot auto-map guard, and exposes all mutation operations.
//   - Normalization: Converts the final column assignments plus the raw rows
//     into typed records, then runs caller-supplied validation hooks.
//
// # Session Lifecycle
//
// A Session covers exactly one import and is discarded afterwards; nothing
// is persisted:
//
//	sess, err := core.NewSession(header, rows, core.SessionConfig{
//	    Fields:         fields,
//	    AutoMapHeaders: true,
//	})
//	sess.Init()                         // one-shot fuzzy auto-map
//	sess.Match(0, "name")               // user corrections
//	result, err := sess.Submit(ctx, false)
//
// Every committed mutation invokes the OnColumnsChanged callback with the
// full column set; this is the only way outside components observe live
// session state.
//
// # Cost Model
//
// A full auto-map pass is O(C*F) distance computations plus O(C*S) sub-entry
// resolutions, where C is the column count, F the field count, and S the
// per-column sample size (SessionConfig.SampleSize, default 3). Callers
// dealing with very wide inputs can turn auto-mapping off entirely.
//
// # Error Handling
//
// Duplicate assignments are resolved locally (the prior column is reverted
// and a notice is emitted). Unmatched required fields surface as a typed
// *UnmatchedFieldsError from Submit. A validation hook returning a Go error
// aborts Submit atomically with no partial record set. Technical errors are
// mapped to user-friendly messages with support codes using [MapError].
package core
