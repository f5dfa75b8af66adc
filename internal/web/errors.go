package web

// errors.go provides unified error response handling for the web layer.
//
// Handlers call respondError with the technical error; it is logged with
// full detail server-side, mapped via core.MapError to a user-friendly
// message with a support code, and returned to the client as JSON.

import (
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/SheetImport/internal/core"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes a sanitized JSON response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeJSONStatus(w, statusCode, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}
