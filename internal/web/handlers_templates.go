package web

// handlers_templates.go exposes the registered schema templates so clients
// can discover what they may import against.

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/SheetImport/internal/core"
	"github.com/go-chi/chi/v5"
)

// TemplateResponse is the JSON shape for one schema template.
type TemplateResponse struct {
	Key    string          `json:"key"`
	Group  string          `json:"group,omitempty"`
	Label  string          `json:"label"`
	Fields []FieldResponse `json:"fields"`
}

func toTemplateResponse(t core.Template) TemplateResponse {
	return TemplateResponse{
		Key:    t.Key,
		Group:  t.Group,
		Label:  t.Label,
		Fields: toFieldResponses(t.Fields),
	}
}

// handleListTemplates returns all registered templates, ordered by group
// then key.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := core.Templates()
	out := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = toTemplateResponse(t)
	}
	writeJSON(w, out)
}

// handleGetTemplate returns a single template by key.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "templateKey")

	t, ok := core.GetTemplate(key)
	if !ok {
		s.respondError(w, r, fmt.Errorf("unknown template: %s", key), http.StatusNotFound)
		return
	}
	writeJSON(w, toTemplateResponse(t))
}
