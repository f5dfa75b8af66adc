package core

import (
	"fmt"
	"testing"
)

// ============================================================================
// Distance Benchmarks
// ============================================================================

// BenchmarkDistance benchmarks edit distance computation.
// This is the hot path of auto-mapping: one call per column/field pair.
func BenchmarkDistance(b *testing.B) {
	pairs := [][2]string{
		{"Name", "Name"},
		{"Full Name", "Name"},
		{"E-mail Address", "Email"},
		{"customer_id", "Customer ID"},
		{"completely unrelated header", "Amount"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range pairs {
			Distance(p[0], p[1])
		}
	}
}

// BenchmarkDistance_Identical benchmarks the common exact-match case.
func BenchmarkDistance_Identical(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Distance("Customer Name", "Customer Name")
	}
}

// BenchmarkDistance_Long benchmarks long dissimilar strings.
func BenchmarkDistance_Long(b *testing.B) {
	a := "A fairly long column header exported from some upstream system"
	c := "An entirely different schema field label with no overlap at all"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Distance(a, c)
	}
}

// ============================================================================
// Auto-Mapping Benchmarks
// ============================================================================

// BenchmarkAutoMapColumns benchmarks the full one-shot auto-map pass.
// Cost is O(columns * fields) distance computations.
func BenchmarkAutoMapColumns(b *testing.B) {
	for _, size := range []int{5, 20, 50} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			fields := make(Fields, size)
			headers := make([]string, size)
			for i := 0; i < size; i++ {
				fields[i] = Field{Key: fmt.Sprintf("field_%d", i), Label: fmt.Sprintf("Field %d", i)}
				headers[i] = fmt.Sprintf("Field %d", size-1-i)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				autoMapColumns(columnsFromHeader(headers...), fields, nil, 2, nil)
			}
		})
	}
}

// BenchmarkOptionResolver benchmarks enumerated sub-entry resolution.
func BenchmarkOptionResolver(b *testing.B) {
	opts := []SelectOption{
		{Label: "Active", Value: "active"},
		{Label: "Pending", Value: "pending"},
		{Label: "Cancelled", Value: "cancelled"},
		{Label: "Completed", Value: "completed"},
	}
	resolver := optionResolver(2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resolver("Pendng", opts)
	}
}

// ============================================================================
// Normalization Benchmarks
// ============================================================================

// BenchmarkNormalizeTableData benchmarks output assembly across row counts.
func BenchmarkNormalizeTableData(b *testing.B) {
	fields := Fields{
		{Key: "name", Label: "Name"},
		{Key: "subscribed", Label: "Subscribed", Type: FieldCheckbox},
		{Key: "status", Label: "Status", Type: FieldSelect, Options: []SelectOption{
			{Label: "Active", Value: "active"},
			{Label: "Inactive", Value: "inactive"},
		}},
	}
	cols := []Column{
		{Index: 0, Header: "Name", Type: ColumnMatched, Value: "name"},
		{Index: 1, Header: "Subscribed", Type: ColumnMatchedCheckbox, Value: "subscribed"},
		{Index: 2, Header: "Status", Type: ColumnMatchedSelectOptions, Value: "status",
			MatchedOptions: []MatchedOption{{Entry: "Active", Value: "active"}}},
	}

	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("rows_%d", n), func(b *testing.B) {
			rows := make([]RawRow, n)
			for i := range rows {
				rows[i] = RawRow{"Alice", "yes", "Active"}
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				NormalizeTableData(cols, rows, fields)
			}
		})
	}
}

// BenchmarkToBool benchmarks checkbox coercion.
func BenchmarkToBool(b *testing.B) {
	values := []string{"true", "false", "yes", "NO", "1", "0", "  off  ", "anything"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			ToBool(v)
		}
	}
}

// ============================================================================
// Error Mapping Benchmarks
// ============================================================================

// BenchmarkMapError benchmarks error-to-user-message mapping.
func BenchmarkMapError(b *testing.B) {
	errs := []error{
		&UnmatchedFieldsError{Fields: Fields{{Key: "email", Label: "Email"}}},
		ErrUnknownField,
		fmt.Errorf("session not found: abc"),
		fmt.Errorf("something inscrutable"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, err := range errs {
			MapError(err)
		}
	}
}

// ============================================================================
// Parallel Benchmarks
// ============================================================================

// BenchmarkDistanceParallel benchmarks parallel distance computation.
func BenchmarkDistanceParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Distance("Full Name", "Name")
		}
	})
}

// BenchmarkToBoolParallel benchmarks parallel checkbox coercion.
func BenchmarkToBoolParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ToBool("yes")
		}
	})
}
