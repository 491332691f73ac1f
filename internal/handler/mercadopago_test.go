// internal/handler/mercadopago_test.go
package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMercadoPagoCallbackForwardsCode(t *testing.T) {
	srv := httptest.NewServer(NewMercadoPagoHandler("http://localhost:3000").Routes())
	defer srv.Close()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(srv.URL + "/callback?code=oauth-code&state=org-1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.Contains(t, location, "http://localhost:3000/organizations/merchant/callback")
	assert.Contains(t, location, "code=oauth-code")
	assert.Contains(t, location, "state=org-1")
}

func TestMercadoPagoCallbackMissingCode(t *testing.T) {
	srv := httptest.NewServer(NewMercadoPagoHandler("http://localhost:3000").Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/callback")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
