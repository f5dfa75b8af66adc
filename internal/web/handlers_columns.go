package web

// handlers_columns.go owns the per-column mutation endpoints. Every
// mutation returns the full column set plus any notices it raised, so
// clients never have to reconcile partial state.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/SheetImport/internal/core"
	"github.com/go-chi/chi/v5"
)

// ColumnsResponse is the JSON shape returned by column mutations.
type ColumnsResponse struct {
	Columns []ColumnResponse `json:"columns"`
	Fields  []FieldResponse  `json:"fields"`
	Notices []core.Notice    `json:"notices,omitempty"`
}

// matchRequest selects the field for a column. FieldKey may carry the
// custom-field prefix to synthesize a new field.
type matchRequest struct {
	FieldKey string `json:"fieldKey"`
}

// optionRequest resolves one sub-entry of an enumerated column. An empty
// value returns the entry to unresolved.
type optionRequest struct {
	Entry string `json:"entry"`
	Value string `json:"value"`
}

// typeRequest picks the secondary classifier for a custom column.
type typeRequest struct {
	ColumnType string `json:"columnType"`
}

// handleMatchColumn assigns a field to a column. If the field is held by
// another column, that column is reset and a duplicate notice is returned.
func (s *Server) handleMatchColumn(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.mutateColumns(w, r, func(sess *core.Session, index int) error {
		return sess.Match(index, req.FieldKey)
	})
}

// handleIgnoreColumn marks a column as ignored.
func (s *Server) handleIgnoreColumn(w http.ResponseWriter, r *http.Request) {
	s.mutateColumns(w, r, func(sess *core.Session, index int) error {
		return sess.Ignore(index)
	})
}

// handleRevertColumn returns a column to the empty state.
func (s *Server) handleRevertColumn(w http.ResponseWriter, r *http.Request) {
	s.mutateColumns(w, r, func(sess *core.Session, index int) error {
		return sess.Revert(index)
	})
}

// handleMatchOption resolves one sub-entry of an enumerated column.
func (s *Server) handleMatchOption(w http.ResponseWriter, r *http.Request) {
	var req optionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.mutateColumns(w, r, func(sess *core.Session, index int) error {
		return sess.SetOptionMatch(index, req.Entry, req.Value)
	})
}

// handleSetColumnType records the secondary classifier for a custom column.
func (s *Server) handleSetColumnType(w http.ResponseWriter, r *http.Request) {
	var req typeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.mutateColumns(w, r, func(sess *core.Session, index int) error {
		return sess.SetColumnType(index, req.ColumnType)
	})
}

// mutateColumns runs a column mutation under the session lock and writes
// the resulting column state.
func (s *Server) mutateColumns(w http.ResponseWriter, r *http.Request, fn func(sess *core.Session, index int) error) {
	id := chi.URLParam(r, "sessionID")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("column index %q is not a number", chi.URLParam(r, "index")), http.StatusBadRequest)
		return
	}

	var resp ColumnsResponse
	err = s.manager.With(id, func(sess *core.Session) error {
		if err := fn(sess, index); err != nil {
			return err
		}
		resp.Columns = toColumnResponses(sess.Columns())
		resp.Fields = toFieldResponses(sess.EffectiveFields())
		return nil
	})
	if err != nil {
		s.respondError(w, r, err, mutationStatus(err))
		return
	}

	resp.Notices = s.drainNotices(id)
	writeJSON(w, resp)
}

// mutationStatus picks the HTTP status for a failed column mutation.
func mutationStatus(err error) int {
	msg := core.MapError(err)
	switch msg.Code {
	case "SES001":
		return http.StatusNotFound
	case "MATCH002", "TPL001":
		return http.StatusNotFound
	case "MATCH003":
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// decodeBody decodes a JSON request body, responding with 400 on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request body: %w", err), http.StatusBadRequest)
		return false
	}
	return true
}
