// internal/handler/social.go
package handler

import (
	"net/http"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/middleware"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/usecase"
	"github.com/adoptyme/backend/internal/view"
	"github.com/go-chi/chi/v5"
)

type SocialHandler struct {
	tokens         *auth.TokenManager
	createPersonal *usecase.CreatePersonalProfile
	editPersonal   *usecase.EditPersonalProfile
	getProfile     *usecase.GetProfile
	createOrg      *usecase.CreateOrganization
	joinOrg        *usecase.JoinOrganization
	acceptMember   *usecase.AcceptOrganizationMember
	disableMember  *usecase.DisableOrganizationMember
	verifyOrg      *usecase.VerifyOrganization
	linkMerchant   *usecase.LinkMerchantAccount
	getOrg         *usecase.GetOrganization
	listOrgs       *usecase.ListOrganizations
	listMembers    *usecase.ListOrganizationMembers
}

func NewSocialHandler(
	tokens *auth.TokenManager,
	createPersonal *usecase.CreatePersonalProfile,
	editPersonal *usecase.EditPersonalProfile,
	getProfile *usecase.GetProfile,
	createOrg *usecase.CreateOrganization,
	joinOrg *usecase.JoinOrganization,
	acceptMember *usecase.AcceptOrganizationMember,
	disableMember *usecase.DisableOrganizationMember,
	verifyOrg *usecase.VerifyOrganization,
	linkMerchant *usecase.LinkMerchantAccount,
	getOrg *usecase.GetOrganization,
	listOrgs *usecase.ListOrganizations,
	listMembers *usecase.ListOrganizationMembers,
) *SocialHandler {
	return &SocialHandler{
		tokens:         tokens,
		createPersonal: createPersonal,
		editPersonal:   editPersonal,
		getProfile:     getProfile,
		createOrg:      createOrg,
		joinOrg:        joinOrg,
		acceptMember:   acceptMember,
		disableMember:  disableMember,
		verifyOrg:      verifyOrg,
		linkMerchant:   linkMerchant,
		getOrg:         getOrg,
		listOrgs:       listOrgs,
		listMembers:    listMembers,
	}
}

func (h *SocialHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/organizations", h.handleListOrganizations)
	r.Get("/organizations/{orgID}", h.handleGetOrganization)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))
		r.Post("/profiles/personal", h.handleCreatePersonal)
		r.Put("/profiles/personal", h.handleEditPersonal)
		r.Get("/profiles/{profileID}", h.handleGetProfile)

		r.Post("/organizations", h.handleCreateOrganization)
		r.Post("/organizations/{orgID}/join", h.handleJoinOrganization)
		r.Post("/organizations/{orgID}/verify", h.handleVerifyOrganization)
		r.Post("/organizations/{orgID}/merchant", h.handleLinkMerchant)
		r.Get("/organizations/{orgID}/members", h.handleListMembers)
		r.Post("/members/{profileID}/accept", h.handleAcceptMember)
		r.Post("/members/{profileID}/disable", h.handleDisableMember)
	})
	return r
}

func (h *SocialHandler) handleCreatePersonal(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.ProfileInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	profile, err := h.createPersonal.Execute(r.Context(), id, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, profile)
}

func (h *SocialHandler) handleEditPersonal(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.ProfileInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	profile, err := h.editPersonal.Execute(r.Context(), id, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, profile)
}

func (h *SocialHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "profileID")
	if err != nil {
		renderError(w, err)
		return
	}
	profile, err := h.getProfile.Execute(r.Context(), profileID)
	if err != nil {
		renderError(w, err)
		return
	}
	if profile.IsPersonal() {
		view.JSON(w, http.StatusOK, profile.Personal)
		return
	}
	view.JSON(w, http.StatusOK, profile.Organizational)
}

func (h *SocialHandler) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	var input service.CreateOrganizationInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	out, err := h.createOrg.Execute(r.Context(), id, input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, out)
}

func (h *SocialHandler) handleJoinOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	orgID, err := pathID(r, "orgID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input struct {
		Role    model.OrganizationalRole `json:"role"`
		Profile service.ProfileInput     `json:"profile"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	profile, err := h.joinOrg.Execute(r.Context(), id, orgID, input.Role, input.Profile)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, profile)
}

func (h *SocialHandler) handleVerifyOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	orgID, err := pathID(r, "orgID")
	if err != nil {
		renderError(w, err)
		return
	}
	org, err := h.verifyOrg.Execute(r.Context(), id, orgID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, org)
}

func (h *SocialHandler) handleLinkMerchant(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	orgID, err := pathID(r, "orgID")
	if err != nil {
		renderError(w, err)
		return
	}
	var input struct {
		Code string `json:"code"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	org, err := h.linkMerchant.Execute(r.Context(), id, orgID, input.Code)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, org)
}

func (h *SocialHandler) handleAcceptMember(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	profileID, err := pathID(r, "profileID")
	if err != nil {
		renderError(w, err)
		return
	}
	member, err := h.acceptMember.Execute(r.Context(), id, profileID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, member)
}

func (h *SocialHandler) handleDisableMember(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	profileID, err := pathID(r, "profileID")
	if err != nil {
		renderError(w, err)
		return
	}
	member, err := h.disableMember.Execute(r.Context(), id, profileID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, member)
}

func (h *SocialHandler) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		renderError(w, err)
		return
	}
	org, err := h.getOrg.Execute(r.Context(), orgID)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, org)
}

func (h *SocialHandler) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	orgs, err := h.listOrgs.Execute(r.Context(), limit, offset)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: orgs})
}

func (h *SocialHandler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	orgID, err := pathID(r, "orgID")
	if err != nil {
		renderError(w, err)
		return
	}
	limit, offset := pagination(r)
	out, err := h.listMembers.Execute(r.Context(), id, orgID, limit, offset)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, view.List{Items: out.Members, Total: out.Total})
}
