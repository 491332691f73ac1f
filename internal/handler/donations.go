// internal/handler/donations.go
package handler

import (
	"fmt"
	"net/http"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/middleware"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/usecase"
	"github.com/adoptyme/backend/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DonationsHandler struct {
	tokens           *auth.TokenManager
	createCampaign   *usecase.CreateCampaign
	closeCampaign    *usecase.CloseCampaign
	listCampaigns    *usecase.ListCampaigns
	getCampaign      *usecase.GetCampaign
	listDonations    *usecase.ListDonations
	donate           *usecase.DonateToCampaign
	createPreference *usecase.CreateDonationPreference
}

func NewDonationsHandler(
	tokens *auth.TokenManager,
	createCampaign *usecase.CreateCampaign,
	closeCampaign *usecase.CloseCampaign,
	listCampaigns *usecase.ListCampaigns,
	getCampaign *usecase.GetCampaign,
	listDonations *usecase.ListDonations,
	donate *usecase.DonateToCampaign,
	createPreference *usecase.CreateDonationPreference,
) *DonationsHandler {
	return &DonationsHandler{
		tokens:           tokens,
		createCampaign:   createCampaign,
		closeCampaign:    closeCampaign,
		listCampaigns:    listCampaigns,
		getCampaign:      getCampaign,
		listDonations:    listDonations,
		donate:           donate,
		createPreference: createPreference,
	}
}

func (h *DonationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/campaigns", h.handleListCampaigns)
	r.Get("/campaigns/{campaignID}", h.handleGetCampaign)
	r.Post("/campaigns/{campaignID}/preference", h.handleCreatePreference)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Post("/campaigns/{campaignID}/close", h.handleCloseCampaign)
		r.Get("/campaigns/{campaignID}/donations", h.handleListDonations)
		r.Post("/campaigns/{campaignID}/donate", h.handleDonate)
	})
	return r
}

func (h *DonationsHandler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.CampaignInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	campaign, err := h.createCampaign.Execute(r.Context(), id, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, campaign)
}

func (h *DonationsHandler) handleCloseCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		renderError(w, err)
		return
	}
	campaign, err := h.closeCampaign.Execute(r.Context(), id, campaignID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, campaign)
}

func (h *DonationsHandler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filter := repository.CampaignFilter{
		OnlyActive: r.URL.Query().Get("active") == "true",
		Limit:      limit,
		Offset:     offset,
	}
	if raw := r.URL.Query().Get("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			renderError(w, fmt.Errorf("%w: invalid organization_id", domain.ErrInvalidInput))
			return
		}
		filter.OrganizationID = orgID
	}
	campaigns, err := h.listCampaigns.Execute(r.Context(), filter)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: campaigns})
}

func (h *DonationsHandler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		renderError(w, err)
		return
	}
	detail, err := h.getCampaign.Execute(r.Context(), campaignID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, detail)
}

func (h *DonationsHandler) handleListDonations(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		renderError(w, err)
		return
	}
	limit, offset := pagination(r)
	donations, err := h.listDonations.Execute(r.Context(), id, campaignID, limit, offset)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: donations})
}

func (h *DonationsHandler) handleDonate(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input usecase.DonateInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	donation, err := h.donate.Execute(r.Context(), id, campaignID, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, donation)
}

func (h *DonationsHandler) handleCreatePreference(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	url, err := h.createPreference.Execute(r.Context(), campaignID, input.Amount)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, map[string]string{"init_point": url})
}
