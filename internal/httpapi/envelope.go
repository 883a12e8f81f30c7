package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	s "github.com/jlym/postboard/go/internal/server"
)

const (
	msgEndpointNotFound = "Endpoint not found"
	msgInvalidBody      = "Invalid request body"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Query   string `json:"query,omitempty"`
	Type    string `json:"type,omitempty"`
}

func dataEnvelope(data any) *Envelope {
	return &Envelope{Success: true, Data: data}
}

func listEnvelope(data any, total int) *Envelope {
	return &Envelope{Success: true, Data: data, Total: &total}
}

func errorEnvelope(message string) *Envelope {
	return &Envelope{Success: false, Error: message}
}

func statusForKind(kind s.Kind) int {
	switch kind {
	case s.KindValidation:
		return http.StatusBadRequest
	case s.KindNotFound:
		return http.StatusNotFound
	case s.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body *Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("writing response failed", slog.String("error", err.Error()))
	}
}
