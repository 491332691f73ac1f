// internal/view/view.go

// Package view shapes domain output for the HTTP boundary: JSON
// rendering, the error-kind to status mapping and list envelopes.
package view

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/adoptyme/backend/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// List is the envelope for paginated collections.
type List struct {
	Items any   `json:"items"`
	Total int64 `json:"total,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// StatusOf maps a domain error kind to an HTTP status. Unknown errors
// surface as 500 without leaking their message.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInvalid:
		return http.StatusBadRequest
	case domain.KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
		message = "internal server error"
	}
	JSON(w, status, errorResponse{Error: message})
}
