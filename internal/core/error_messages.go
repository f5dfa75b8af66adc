// Package core implements the column matching and normalization engine.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code to
// support staff for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Matching Errors (MATCH001-MATCH099)
//
// Errors related to column/field matching and submit gating:
//
//	MATCH001 - Unmatched required fields: required fields have no column
//	           Action: Match the listed fields or confirm submitting without them
//
//	MATCH002 - Unknown field: the selected field key does not exist
//	           Action: Pick a field from the template list
//
//	MATCH003 - Custom fields disabled: this import does not allow ad-hoc fields
//	           Action: Match the column to a template field or ignore it
//
//	MATCH004 - Column out of range: the column index does not exist
//	           Action: Reload the session and try again
//	           Patterns: "column index", "out of range"
//
// # Validation Errors (VAL001-VAL099)
//
// Errors related to the caller-supplied validation hooks:
//
//	VAL001 - Row hook failed: a per-row validator itself errored
//	         Action: This is a configuration problem; contact support
//
//	VAL002 - Table hook failed: a whole-table validator itself errored
//	         Action: This is a configuration problem; contact support
//
// # File Errors (FILE001-FILE099)
//
// Errors related to file handling at the ingestion boundary:
//
//	FILE001 - File too large: file exceeds the maximum size limit
//	          Action: Split the file into smaller chunks
//	          Patterns: "file too large", "http: request body too large"
//
//	FILE002 - Invalid file: file could not be parsed as CSV or XLSX
//	          Action: Ensure the file is a valid spreadsheet export
//	          Patterns: "parse csv", "parse workbook", "invalid csv"
//
//	FILE003 - Empty file: the uploaded file has no data rows
//	          Action: Upload a file with at least a header row and one data row
//	          Patterns: "empty file", "no data rows"
//
// # Session Errors (SES001-SES099)
//
// Errors related to session management:
//
//	SES001 - Session not found: the session expired or was discarded
//	         Action: Start a new import
//	         Patterns: "session not found"
//
//	SES002 - Request cancelled or timed out
//	         Action: Please try again
//	         Patterns: "context canceled", "context deadline exceeded"
//
//	SES003 - Too many sessions: the active session cap was reached
//	         Action: Wait for other imports to finish and retry
//	         Patterns: "too many active sessions"
//
// # Template Errors (TPL001-TPL099)
//
//	TPL001 - Unknown template: the schema template key is not registered
//	         Action: Verify the template key is correct
//	         Patterns: "unknown template"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: an unexpected error occurred
//	         Action: Please try again or contact support
//
// Typed errors (UnmatchedFieldsError, HookError, ErrUnknownField,
// ErrCustomFieldsDisabled) are mapped first via errors.As/Is; string
// patterns are matched case-insensitively with strings.Contains, first
// match wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. First match wins, so more specific patterns come before general
// ones.
var errorPatterns = []errorPattern{
	{
		pattern: "column index",
		msg: UserMessage{
			Message: "That column no longer exists",
			Action:  "Reload the session and try again",
			Code:    "MATCH004",
		},
	},
	{
		pattern: "http: request body too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parse csv",
		msg: UserMessage{
			Message: "The file could not be read as CSV",
			Action:  "Ensure the file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "parse workbook",
		msg: UserMessage{
			Message: "The file could not be read as a spreadsheet",
			Action:  "Ensure the file is a valid XLSX export",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with at least a header row and one data row",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "The file has no data rows after the header",
			Action:  "Upload a file with at least one data row",
			Code:    "FILE003",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your import session has expired",
			Action:  "Start a new import",
			Code:    "SES001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "SES002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "SES002",
		},
	},
	{
		pattern: "too many active sessions",
		msg: UserMessage{
			Message: "Too many imports are in progress",
			Action:  "Wait for other imports to finish and retry",
			Code:    "SES003",
		},
	},
	{
		pattern: "unknown template",
		msg: UserMessage{
			Message: "That import template does not exist",
			Action:  "Verify the template key is correct",
			Code:    "TPL001",
		},
	},
}

// defaultMessage is the fallback for unrecognized errors.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message with a
// support code. Typed engine errors are recognized first, then string
// patterns, then the ERR000 fallback.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var unmatched *UnmatchedFieldsError
	if errors.As(err, &unmatched) {
		labels := make([]string, len(unmatched.Fields))
		for i, f := range unmatched.Fields {
			labels[i] = f.Label
		}
		return UserMessage{
			Message: fmt.Sprintf("Required fields are not matched: %s", strings.Join(labels, ", ")),
			Action:  "Match the listed fields or confirm submitting without them",
			Code:    "MATCH001",
		}
	}

	var hook *HookError
	if errors.As(err, &hook) {
		code := "VAL001"
		if hook.Stage == "table" {
			code = "VAL002"
		}
		return UserMessage{
			Message: "A validation step failed unexpectedly",
			Action:  "This is a configuration problem; contact support",
			Code:    code,
		}
	}

	if errors.Is(err, ErrUnknownField) {
		return UserMessage{
			Message: "The selected field does not exist",
			Action:  "Pick a field from the template list",
			Code:    "MATCH002",
		}
	}

	if errors.Is(err, ErrCustomFieldsDisabled) {
		return UserMessage{
			Message: "This import does not allow custom fields",
			Action:  "Match the column to a template field or ignore it",
			Code:    "MATCH003",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
