package core

// automap.go implements the one-shot initialization pass that assigns
// columns to fields by fuzzy header matching. The pass is greedy by column
// index: once a field is claimed by a lower-index column it is not offered
// to later columns in the same pass.

// autoMapColumns runs the distance matcher over every (column, field) pair
// and assigns each unmatched, non-empty-header column to its closest field
// when that distance is within threshold. When resolver is non-nil, assigned
// enumerated fields also get their sub-entries auto-resolved against the
// column's sample values.
//
// Ties between fields at equal distance are broken by the lexicographically
// smaller key, so the result does not depend on schema declaration order.
func autoMapColumns(cols []Column, fields Fields, sample []RawRow, threshold int, resolver func(raw string, opts []SelectOption) string) []Column {
	claimed := make(map[string]bool)
	for _, col := range cols {
		if col.Type.Matched() {
			claimed[col.Value] = true
		}
	}

	next := make([]Column, len(cols))
	for i, col := range cols {
		next[i] = col
		if col.Type != ColumnEmpty || col.Header == "" {
			continue
		}

		field, dist, ok := closestField(col.Header, fields)
		if !ok || dist > threshold || claimed[field.Key] {
			continue
		}

		claimed[field.Key] = true
		next[i] = matchColumn(col, &field, sample, resolver)
	}
	return next
}

// closestField returns the field whose label is nearest to header.
func closestField(header string, fields Fields) (Field, int, bool) {
	var best Field
	bestDist := -1

	for _, f := range fields {
		d := Distance(header, f.Label)
		if bestDist < 0 || d < bestDist || (d == bestDist && f.Key < best.Key) {
			best = f
			bestDist = d
		}
	}

	if bestDist < 0 {
		return Field{}, 0, false
	}
	return best, bestDist, true
}

// optionResolver returns the sub-match resolver used during auto-mapping:
// a raw cell value maps to the allowed option whose label is nearest, or
// stays unresolved when nothing is within threshold.
func optionResolver(threshold int) func(raw string, opts []SelectOption) string {
	return func(raw string, opts []SelectOption) string {
		value := ""
		bestDist := -1

		for _, opt := range opts {
			label := opt.Label
			if label == "" {
				label = opt.Value
			}
			d := Distance(raw, label)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				value = opt.Value
			}
		}

		if bestDist < 0 || bestDist > threshold {
			return ""
		}
		return value
	}
}
