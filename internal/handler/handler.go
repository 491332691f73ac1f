// internal/handler/handler.go

// Package handler is the chi HTTP surface. Handlers decode requests,
// call one use case and render the result; no domain logic lives here.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/middleware"
	"github.com/adoptyme/backend/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", domain.ErrInvalidInput, name)
	}
	return id, nil
}

// accountID reads the principal set by the auth middleware. Routes
// behind RequireAuth always have one.
func accountID(r *http.Request) (uuid.UUID, error) {
	id, ok := middleware.AccountID(r.Context())
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var renderError = view.Error
