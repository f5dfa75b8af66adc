package core

// fields.go derives the effective field set and computes submit gating.

// mergeFields returns declared and custom fields as one ordered set, deduped
// by key with first-write-wins. Declared fields always precede custom ones.
// The result is a fresh slice; neither input is modified.
func mergeFields(declared, custom Fields) Fields {
	seen := make(map[string]bool, len(declared)+len(custom))
	merged := make(Fields, 0, len(declared)+len(custom))

	for _, f := range declared {
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		merged = append(merged, f)
	}
	for _, f := range custom {
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		merged = append(merged, f)
	}
	return merged
}

// FindUnmatchedRequired returns every required field that no column is
// currently assigned to, in schema declaration order. A field counts as
// matched only when the assigned column is in a matched state, not ignored
// or empty. Pure, no side effects.
func FindUnmatchedRequired(fields Fields, cols []Column) Fields {
	var unmatched Fields
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if !fieldMatched(f.Key, cols) {
			unmatched = append(unmatched, f)
		}
	}
	return unmatched
}

// fieldMatched reports whether some matched-state column holds the key.
func fieldMatched(key string, cols []Column) bool {
	for _, col := range cols {
		if col.Type.Matched() && col.Value == key {
			return true
		}
	}
	return false
}
