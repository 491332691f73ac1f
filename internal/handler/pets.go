// internal/handler/pets.go
package handler

import (
	"net/http"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/middleware"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/usecase"
	"github.com/adoptyme/backend/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PetsHandler struct {
	tokens         *auth.TokenManager
	registerPet    *usecase.RegisterPet
	editPet        *usecase.EditPet
	removePet      *usecase.RemovePet
	regenerateQR   *usecase.RegeneratePetQR
	getPet         *usecase.GetPet
	listMyPets     *usecase.ListMyPets
	reportSighting *usecase.ReportSighting
	listSightings  *usecase.ListSightings
}

func NewPetsHandler(
	tokens *auth.TokenManager,
	registerPet *usecase.RegisterPet,
	editPet *usecase.EditPet,
	removePet *usecase.RemovePet,
	regenerateQR *usecase.RegeneratePetQR,
	getPet *usecase.GetPet,
	listMyPets *usecase.ListMyPets,
	reportSighting *usecase.ReportSighting,
	listSightings *usecase.ListSightings,
) *PetsHandler {
	return &PetsHandler{
		tokens:         tokens,
		registerPet:    registerPet,
		editPet:        editPet,
		removePet:      removePet,
		regenerateQR:   regenerateQR,
		getPet:         getPet,
		listMyPets:     listMyPets,
		reportSighting: reportSighting,
		listSightings:  listSightings,
	}
}

func (h *PetsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	// Public: the QR tag resolves here, and sightings may be anonymous.
	r.Get("/{petID}", h.handleGetPet)
	r.Get("/{petID}/sightings", h.handleListSightings)
	r.With(middleware.OptionalAuth(h.tokens)).Post("/{petID}/sightings", h.handleReportSighting)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))
		r.Post("/", h.handleRegisterPet)
		r.Get("/", h.handleListMyPets)
		r.Put("/{petID}", h.handleEditPet)
		r.Delete("/{petID}", h.handleRemovePet)
		r.Post("/{petID}/qr", h.handleRegenerateQR)
	})
	return r
}

func (h *PetsHandler) handleRegisterPet(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.PetInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	pet, err := h.registerPet.Execute(r.Context(), id, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, pet)
}

func (h *PetsHandler) handleEditPet(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	petID, err := pathID(r, "petID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.PetInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	pet, err := h.editPet.Execute(r.Context(), id, petID, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, pet)
}

func (h *PetsHandler) handleRemovePet(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	petID, err := pathID(r, "petID")
	if err != nil {
		renderError(w, err)
		return
	}
	if err := h.removePet.Execute(r.Context(), id, petID); err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusNoContent, nil)
}

func (h *PetsHandler) handleRegenerateQR(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	petID, err := pathID(r, "petID")
	if err != nil {
		renderError(w, err)
		return
	}
	pet, err := h.regenerateQR.Execute(r.Context(), id, petID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, pet)
}

func (h *PetsHandler) handleGetPet(w http.ResponseWriter, r *http.Request) {
	petID, err := pathID(r, "petID")
	if err != nil {
		renderError(w, err)
		return
	}
	pet, err := h.getPet.Execute(r.Context(), petID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, pet)
}

func (h *PetsHandler) handleListMyPets(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	pets, err := h.listMyPets.Execute(r.Context(), id)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: pets})
}

func (h *PetsHandler) handleReportSighting(w http.ResponseWriter, r *http.Request) {
	petID, err := pathID(r, "petID")
	if err != nil {
		renderError(w, err)
		return
	}
	var reporter *uuid.UUID
	if id, ok := middleware.AccountID(r.Context()); ok {
		reporter = &id
	}
	var input service.SightInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	sight, err := h.reportSighting.Execute(r.Context(), petID, reporter, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, sight)
}

func (h *PetsHandler) handleListSightings(w http.ResponseWriter, r *http.Request) {
	petID, err := pathID(r, "petID")
	if err != nil {
		renderError(w, err)
		return
	}
	limit, offset := pagination(r)
	sights, err := h.listSightings.Execute(r.Context(), petID, limit, offset)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: sights})
}
