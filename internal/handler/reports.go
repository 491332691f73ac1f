// internal/handler/reports.go
package handler

import (
	"fmt"
	"net/http"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/middleware"
	"github.com/adoptyme/backend/internal/usecase"
	"github.com/adoptyme/backend/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ReportsHandler struct {
	tokens          *auth.TokenManager
	adoptionsReport *usecase.AdoptionsReport
	donationsReport *usecase.DonationsReport
	lostPetsReport  *usecase.LostPetsReport
}

func NewReportsHandler(
	tokens *auth.TokenManager,
	adoptionsReport *usecase.AdoptionsReport,
	donationsReport *usecase.DonationsReport,
	lostPetsReport *usecase.LostPetsReport,
) *ReportsHandler {
	return &ReportsHandler{
		tokens:          tokens,
		adoptionsReport: adoptionsReport,
		donationsReport: donationsReport,
		lostPetsReport:  lostPetsReport,
	}
}

func (h *ReportsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireAuth(h.tokens))
	r.Get("/adoptions", h.handleAdoptions)
	r.Get("/donations", h.handleDonations)
	r.Get("/lost-pets", h.handleLostPets)
	return r
}

func (h *ReportsHandler) handleAdoptions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.adoptionsReport.Execute(r.Context())
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: rows})
}

func (h *ReportsHandler) handleDonations(w http.ResponseWriter, r *http.Request) {
	orgID := uuid.Nil
	if raw := r.URL.Query().Get("organization_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			renderError(w, fmt.Errorf("%w: invalid organization_id", domain.ErrInvalidInput))
			return
		}
		orgID = parsed
	}
	rows, err := h.donationsReport.Execute(r.Context(), orgID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: rows})
}

func (h *ReportsHandler) handleLostPets(w http.ResponseWriter, r *http.Request) {
	rows, err := h.lostPetsReport.Execute(r.Context())
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: rows})
}
