package web

// handlers.go owns the session lifecycle endpoints: upload-and-create,
// inspect, and discard. Column mutations live in handlers_columns.go and
// submit gating in handlers_submit.go.

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/JonMunkholm/SheetImport/internal/core"
	"github.com/JonMunkholm/SheetImport/internal/ingest"
	"github.com/JonMunkholm/SheetImport/internal/logging"
	"github.com/go-chi/chi/v5"
)

// noticeLog buffers non-fatal engine notices per session so handlers can
// return them alongside the column state they belong to.
type noticeLog struct {
	mu    sync.Mutex
	items []core.Notice
}

func (l *noticeLog) add(n core.Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, n)
}

// drain returns the buffered notices and clears the log.
func (l *noticeLog) drain() []core.Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := l.items
	l.items = nil
	return items
}

func (s *Server) noticeLogFor(id string) *noticeLog {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	return s.notices[id]
}

func (s *Server) drainNotices(id string) []core.Notice {
	if l := s.noticeLogFor(id); l != nil {
		return l.drain()
	}
	return nil
}

// SessionResponse is the JSON shape for session state.
type SessionResponse struct {
	ID          string           `json:"id"`
	TemplateKey string           `json:"templateKey"`
	FileName    string           `json:"fileName"`
	RowCount    int              `json:"rowCount"`
	Columns     []ColumnResponse `json:"columns"`
	Fields      []FieldResponse  `json:"fields"`
	Notices     []core.Notice    `json:"notices,omitempty"`
}

// ColumnResponse is the JSON shape for one column's matching state.
type ColumnResponse struct {
	Index          int                  `json:"index"`
	Header         string               `json:"header"`
	State          string               `json:"state"`
	FieldKey       string               `json:"fieldKey,omitempty"`
	MatchedOptions []core.MatchedOption `json:"matchedOptions,omitempty"`
	SelectedType   string               `json:"selectedType,omitempty"`
}

// FieldResponse is the JSON shape for one schema field.
type FieldResponse struct {
	Key      string              `json:"key"`
	Label    string              `json:"label"`
	Required bool                `json:"required"`
	Type     string              `json:"type"`
	Options  []core.SelectOption `json:"options,omitempty"`
}

func toColumnResponses(cols []core.Column) []ColumnResponse {
	out := make([]ColumnResponse, len(cols))
	for i, col := range cols {
		out[i] = ColumnResponse{
			Index:          col.Index,
			Header:         col.Header,
			State:          col.Type.String(),
			FieldKey:       col.Value,
			MatchedOptions: col.MatchedOptions,
			SelectedType:   col.SelectedType,
		}
	}
	return out
}

func toFieldResponses(fields core.Fields) []FieldResponse {
	out := make([]FieldResponse, len(fields))
	for i, f := range fields {
		out[i] = FieldResponse{
			Key:      f.Key,
			Label:    f.Label,
			Required: f.Required,
			Type:     f.Type.String(),
			Options:  f.Options,
		}
	}
	return out
}

// handleCreateSession ingests an uploaded spreadsheet and starts a matching
// session against the requested schema template.
//
// Expects multipart/form-data with:
//   - file: the CSV or XLSX upload (required)
//   - template: registered schema template key (required)
//   - sheet: workbook sheet name (optional, defaults to the first sheet)
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		s.respondError(w, r, fmt.Errorf("parse upload form: %w", err), http.StatusBadRequest)
		return
	}

	templateKey := r.FormValue("template")
	tpl, ok := core.GetTemplate(templateKey)
	if !ok {
		s.respondError(w, r, fmt.Errorf("unknown template: %s", templateKey), http.StatusNotFound)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("missing file: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusBadRequest)
		return
	}

	rows, err := ingest.ReadFile(header.Filename, data, r.FormValue("sheet"), s.cfg.Import.MaxRows)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	headerRow, dataRows, err := ingest.Split(rows)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	// Auto-mapping cost grows with file size; past the configured bound the
	// user maps columns manually.
	autoMap := s.cfg.Import.AutoMapHeaders
	if s.cfg.Import.AutoMapMaxBytes > 0 && int64(len(data)) > s.cfg.Import.AutoMapMaxBytes {
		autoMap = false
	}

	nl := &noticeLog{}
	id, err := s.manager.Create(templateKey, header.Filename, headerRow, dataRows, core.SessionConfig{
		Fields:              tpl.Fields,
		AutoMapHeaders:      autoMap,
		AutoMapSelectValues: autoMap && s.cfg.Import.AutoMapSelectValues,
		AutoMapDistance:     s.cfg.Import.AutoMapDistance,
		SampleSize:          s.cfg.Import.SampleSize,
		AllowCustomFields:   s.cfg.Import.AllowCustomFields,
		AllowInvalidSubmit:  s.cfg.Import.AllowInvalidSubmit,
		OnNotice:            nl.add,
	})
	if err != nil {
		status := http.StatusBadRequest
		if err == core.ErrTooManySessions {
			status = http.StatusServiceUnavailable
		}
		s.respondError(w, r, err, status)
		return
	}

	s.noticeMu.Lock()
	s.notices[id] = nl
	s.noticeMu.Unlock()

	logger.Info("session created",
		"session_id", id,
		"template", templateKey,
		"file", header.Filename,
		"rows", len(dataRows),
	)

	resp, err := s.sessionResponse(id)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSONStatus(w, http.StatusCreated, resp)
}

// handleGetSession returns the current matching state of a session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.sessionResponse(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, resp)
}

// handleDeleteSession discards a session and its buffered notices.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	if err := s.manager.Delete(id); err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	s.dropNotices(id)

	w.WriteHeader(http.StatusNoContent)
}

// sessionResponse assembles the full session state payload, draining any
// buffered notices.
func (s *Server) sessionResponse(id string) (SessionResponse, error) {
	meta, err := s.manager.Meta(id)
	if err != nil {
		return SessionResponse{}, err
	}

	resp := SessionResponse{
		ID:          meta.ID,
		TemplateKey: meta.TemplateKey,
		FileName:    meta.FileName,
	}

	err = s.manager.With(id, func(sess *core.Session) error {
		resp.RowCount = len(sess.Rows())
		resp.Columns = toColumnResponses(sess.Columns())
		resp.Fields = toFieldResponses(sess.EffectiveFields())
		return nil
	})
	if err != nil {
		return SessionResponse{}, err
	}

	resp.Notices = s.drainNotices(id)
	return resp, nil
}

func (s *Server) dropNotices(id string) {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	delete(s.notices, id)
}
