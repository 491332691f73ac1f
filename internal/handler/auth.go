// internal/handler/auth.go
package handler

import (
	"net/http"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/middleware"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/usecase"
	"github.com/adoptyme/backend/internal/view"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	tokens               *auth.TokenManager
	signup               *usecase.Signup
	verify               *usecase.VerifyAccount
	login                *usecase.Login
	requestPasswordReset *usecase.RequestPasswordReset
	resetPassword        *usecase.ResetPassword
	getMe                *usecase.GetMe
}

func NewAuthHandler(
	tokens *auth.TokenManager,
	signup *usecase.Signup,
	verify *usecase.VerifyAccount,
	login *usecase.Login,
	requestPasswordReset *usecase.RequestPasswordReset,
	resetPassword *usecase.ResetPassword,
	getMe *usecase.GetMe,
) *AuthHandler {
	return &AuthHandler{
		tokens:               tokens,
		signup:               signup,
		verify:               verify,
		login:                login,
		requestPasswordReset: requestPasswordReset,
		resetPassword:        resetPassword,
		getMe:                getMe,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.handleSignup)
	r.Post("/verify", h.handleVerify)
	r.Post("/login", h.handleLogin)
	r.Post("/password-reset/request", h.handleRequestPasswordReset)
	r.Post("/password-reset", h.handleResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))
		r.Get("/me", h.handleMe)
	})
	return r
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	account, err := h.signup.Execute(r.Context(), input)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusCreated, account)
}

func (h *AuthHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token string `json:"token"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	account, err := h.verify.Execute(r.Context(), input.Token)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, account)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	out, err := h.login.Execute(r.Context(), input.Email, input.Password)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, out)
}

func (h *AuthHandler) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	if err := h.requestPasswordReset.Execute(r.Context(), input.Email); err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusAccepted, nil)
}

func (h *AuthHandler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decode(r, &input); err != nil {
		renderError(w, err)
		return
	}
	if err := h.resetPassword.Execute(r.Context(), input.Token, input.Password); err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, nil)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		renderError(w, err)
		return
	}
	me, err := h.getMe.Execute(r.Context(), id)
	if err != nil {
		renderError(w, err)
		return
	}
	view.JSON(w, http.StatusOK, me)
}
