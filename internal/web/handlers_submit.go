package web

// handlers_submit.go owns the submit gate: unmatched-required inspection
// and the final normalize-and-validate step.

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/SheetImport/internal/core"
	"github.com/JonMunkholm/SheetImport/internal/logging"
	"github.com/go-chi/chi/v5"
)

// UnmatchedResponse lists required fields with no matched column.
type UnmatchedResponse struct {
	Unmatched []FieldResponse `json:"unmatched"`
}

// submitRequest carries the force flag confirming a submit with unmatched
// required fields.
type submitRequest struct {
	Force bool `json:"force"`
}

// SubmitResponse is the JSON shape of a completed import.
type SubmitResponse struct {
	Records []core.Record    `json:"records"`
	Columns []ColumnResponse `json:"columns"`
}

// handleUnmatched returns the required fields that have no matched column,
// in schema declaration order.
func (s *Server) handleUnmatched(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var unmatched core.Fields
	err := s.manager.With(id, func(sess *core.Session) error {
		unmatched = sess.UnmatchedRequired()
		return nil
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	writeJSON(w, UnmatchedResponse{Unmatched: toFieldResponses(unmatched)})
}

// handleSubmit normalizes the session's rows against the current column
// assignments and runs the validation hooks. Unmatched required fields
// yield a 409 with the field list unless force is set and the deployment
// policy allows invalid submits. A successful submit discards the session.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	id := chi.URLParam(r, "sessionID")

	var req submitRequest
	if r.ContentLength > 0 && !s.decodeBody(w, r, &req) {
		return
	}

	var result *core.SubmitResult
	err := s.manager.With(id, func(sess *core.Session) error {
		var err error
		result, err = sess.Submit(r.Context(), req.Force)
		return err
	})
	if err != nil {
		s.respondError(w, r, err, submitStatus(err))
		return
	}

	// The flow is one-shot: a successful submit ends the session.
	if err := s.manager.Delete(id); err == nil {
		s.dropNotices(id)
	}

	logger.Info("session submitted",
		"session_id", id,
		"records", len(result.Records),
		"forced", req.Force,
	)

	writeJSON(w, SubmitResponse{
		Records: result.Records,
		Columns: toColumnResponses(result.Columns),
	})
}

// submitStatus picks the HTTP status for a failed submit.
func submitStatus(err error) int {
	var unmatched *core.UnmatchedFieldsError
	if errors.As(err, &unmatched) {
		return http.StatusConflict
	}

	var hook *core.HookError
	if errors.As(err, &hook) {
		return http.StatusUnprocessableEntity
	}

	if core.MapError(err).Code == "SES001" {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
