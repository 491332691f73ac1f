// internal/handler/mercadopago.go
package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

// MercadoPagoHandler receives the OAuth redirect. The browser lands
// here carrying the authorization code; the frontend finishes the flow
// through the authenticated link-merchant endpoint.
type MercadoPagoHandler struct {
	frontendURL string
}

func NewMercadoPagoHandler(frontendURL string) *MercadoPagoHandler {
	return &MercadoPagoHandler{frontendURL: frontendURL}
}

func (h *MercadoPagoHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/callback", h.handleCallback)
	return r
}

func (h *MercadoPagoHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		renderError(w, fmt.Errorf("%w: missing authorization code", domain.ErrInvalidInput))
		return
	}

	query := url.Values{"code": {code}}
	if state := r.URL.Query().Get("state"); state != "" {
		query.Set("state", state)
	}
	http.Redirect(w, r, h.frontendURL+"/organizations/merchant/callback?"+query.Encode(), http.StatusFound)
}
