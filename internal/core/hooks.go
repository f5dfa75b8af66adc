package core

// hooks.go runs the caller-supplied validation hooks over the normalized
// record set. Hooks return validation-error data to attach to records; a
// hook returning a Go error is a failure of the hook itself and aborts the
// submit with no partial output.

import (
	"context"
	"fmt"
)

// runHooks applies the row hook to every record, then the table hook to the
// whole set, preserving row order. Cancellation is checked periodically
// between rows.
func runHooks(ctx context.Context, records []Record, fields Fields, rowHook RowHook, tableHook TableHook) ([]Record, error) {
	if rowHook != nil {
		for i := range records {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("submit cancelled: %w", err)
				}
			}

			errs, err := rowHook(records[i], fields)
			if err != nil {
				return nil, &HookError{Stage: "row", Err: err}
			}
			records[i].Errors = append(records[i].Errors, errs...)
		}
	}

	if tableHook != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("submit cancelled: %w", err)
		}

		byRow, err := tableHook(records, fields)
		if err != nil {
			return nil, &HookError{Stage: "table", Err: err}
		}
		for i := range records {
			if errs, ok := byRow[records[i].RowIndex]; ok {
				records[i].Errors = append(records[i].Errors, errs...)
			}
		}
	}

	return records, nil
}
