// internal/handler/adoptions.go
package handler

import (
	"fmt"
	"net/http"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/middleware"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/usecase"
	"github.com/adoptyme/backend/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdoptionsHandler struct {
	tokens           *auth.TokenManager
	publishAnimal    *usecase.PublishAnimal
	editAnimal       *usecase.EditAnimal
	removeAnimal     *usecase.RemoveAnimal
	getAnimal        *usecase.GetAnimal
	listAnimals      *usecase.ListAnimals
	apply            *usecase.ApplyForAdoption
	decide           *usecase.DecideApplication
	listByAnimal     *usecase.ListAnimalApplications
	listApplications *usecase.ListMyApplications
}

func NewAdoptionsHandler(
	tokens *auth.TokenManager,
	publishAnimal *usecase.PublishAnimal,
	editAnimal *usecase.EditAnimal,
	removeAnimal *usecase.RemoveAnimal,
	getAnimal *usecase.GetAnimal,
	listAnimals *usecase.ListAnimals,
	apply *usecase.ApplyForAdoption,
	decide *usecase.DecideApplication,
	listByAnimal *usecase.ListAnimalApplications,
	listApplications *usecase.ListMyApplications,
) *AdoptionsHandler {
	return &AdoptionsHandler{
		tokens:           tokens,
		publishAnimal:    publishAnimal,
		editAnimal:       editAnimal,
		removeAnimal:     removeAnimal,
		getAnimal:        getAnimal,
		listAnimals:      listAnimals,
		apply:            apply,
		decide:           decide,
		listByAnimal:     listByAnimal,
		listApplications: listApplications,
	}
}

func (h *AdoptionsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/animals", h.handleListAnimals)
	r.Get("/animals/{animalID}", h.handleGetAnimal)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))
		r.Post("/animals", h.handlePublishAnimal)
		r.Put("/animals/{animalID}", h.handleEditAnimal)
		r.Delete("/animals/{animalID}", h.handleRemoveAnimal)
		r.Get("/animals/{animalID}/applications", h.handleListByAnimal)
		r.Post("/animals/{animalID}/applications", h.handleApply)
		r.Post("/applications/{applicationID}/decision", h.handleDecide)
		r.Get("/applications/mine", h.handleListMine)
	})
	return r
}

func (h *AdoptionsHandler) handlePublishAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.AnimalInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	animal, err := h.publishAnimal.Execute(r.Context(), id, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, animal)
}

func (h *AdoptionsHandler) handleEditAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	animalID, err := pathID(r, "animalID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.AnimalInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	animal, err := h.editAnimal.Execute(r.Context(), id, animalID, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, animal)
}

func (h *AdoptionsHandler) handleRemoveAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	animalID, err := pathID(r, "animalID")
	if err != nil {
		renderError(w, err)
		return
	}
	if err := h.removeAnimal.Execute(r.Context(), id, animalID); err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusNoContent, nil)
}

func (h *AdoptionsHandler) handleGetAnimal(w http.ResponseWriter, r *http.Request) {
	animalID, err := pathID(r, "animalID")
	if err != nil {
		renderError(w, err)
		return
	}
	animal, err := h.getAnimal.Execute(r.Context(), animalID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, animal)
}

func (h *AdoptionsHandler) handleListAnimals(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filter := repository.AnimalFilter{
		Species: model.Species(r.URL.Query().Get("species")),
		State:   model.AdoptionState(r.URL.Query().Get("state")),
		Limit:   limit,
		Offset:  offset,
	}
	if raw := r.URL.Query().Get("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			renderError(w, fmt.Errorf("%w: invalid organization_id", domain.ErrInvalidInput))
			return
		}
		filter.OrganizationID = orgID
	}
	out, err := h.listAnimals.Execute(r.Context(), filter)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: out.Animals, Total: out.Total})
}

func (h *AdoptionsHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	animalID, err := pathID(r, "animalID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.ApplicationInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	application, err := h.apply.Execute(r.Context(), id, animalID, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, application)
}

func (h *AdoptionsHandler) handleDecide(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	applicationID, err := pathID(r, "applicationID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input struct {
		State model.ApplicationState `json:"state"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	application, err := h.decide.Execute(r.Context(), id, applicationID, input.State)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, application)
}

func (h *AdoptionsHandler) handleListByAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	animalID, err := pathID(r, "animalID")
	if err != nil {
		renderError(w, err)
		return
	}
	applications, err := h.listByAnimal.Execute(r.Context(), id, animalID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: applications})
}

func (h *AdoptionsHandler) handleListMine(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	limit, offset := pagination(r)
	applications, err := h.listApplications.Execute(r.Context(), id, limit, offset)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: applications})
}
