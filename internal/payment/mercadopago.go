// internal/payment/mercadopago.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MercadoPagoClient talks to the MercadoPago REST API. Every call
// carries the configured timeout.
type MercadoPagoClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

func NewMercadoPagoClient(baseURL, clientID, clientSecret, redirectURI string, timeout time.Duration) *MercadoPagoClient {
	return &MercadoPagoClient{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (c *MercadoPagoClient) postJSON(ctx context.Context, path, bearer string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", uuid.NewString())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling mercadopago: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("mercadopago returned %d: %s", resp.StatusCode, apiErr.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *MercadoPagoClient) ExchangeOAuthCode(ctx context.Context, code string) (*MerchantData, error) {
	body := map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"grant_type":    "authorization_code",
		"code":          code,
		"redirect_uri":  c.redirectURI,
	}

	var out struct {
		UserID       json.Number `json:"user_id"`
		AccessToken  string      `json:"access_token"`
		RefreshToken string      `json:"refresh_token"`
		PublicKey    string      `json:"public_key"`
	}
	if err := c.postJSON(ctx, "/oauth/token", "", body, &out); err != nil {
		return nil, err
	}

	return &MerchantData{
		UserID:       out.UserID.String(),
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		PublicKey:    out.PublicKey,
	}, nil
}

func (c *MercadoPagoClient) Charge(ctx context.Context, merchantToken string, req ChargeRequest) (*ChargeResponse, error) {
	amount, _ := req.Amount.Float64()
	body := map[string]interface{}{
		"token":              req.CardToken,
		"transaction_amount": amount,
		"installments":       req.Installments,
		"payment_method_id":  req.PaymentMethod,
		"description":        req.Description,
		"payer": map[string]string{
			"email": req.PayerEmail,
		},
	}

	var out struct {
		ID              json.Number `json:"id"`
		Status          string      `json:"status"`
		StatusDetail    string      `json:"status_detail"`
		PaymentMethodID string      `json:"payment_method_id"`
		PaymentTypeID   string      `json:"payment_type_id"`
		DateApproved    *time.Time  `json:"date_approved"`
		Payer           struct {
			Email string `json:"email"`
		} `json:"payer"`
		Card struct {
			Cardholder struct {
				Name string `json:"name"`
			} `json:"cardholder"`
		} `json:"card"`
		TransactionDetails struct {
			NetReceivedAmount decimal.Decimal `json:"net_received_amount"`
		} `json:"transaction_details"`
		FeeDetails []struct {
			Type   string          `json:"type"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"fee_details"`
	}
	if err := c.postJSON(ctx, "/v1/payments", merchantToken, body, &out); err != nil {
		return nil, err
	}

	resp := &ChargeResponse{
		TransactionID: out.ID.String(),
		Status:        out.Status,
		StatusDetail:  out.StatusDetail,
		NetAmount:     out.TransactionDetails.NetReceivedAmount,
		PayerEmail:    out.Payer.Email,
		PayerName:     out.Card.Cardholder.Name,
		PaymentMethod: out.PaymentMethodID,
		PaymentType:   out.PaymentTypeID,
		DateApproved:  out.DateApproved,
	}
	if resp.PayerEmail == "" {
		resp.PayerEmail = req.PayerEmail
	}
	if resp.PayerName == "" {
		resp.PayerName = req.PayerName
	}
	for _, fee := range out.FeeDetails {
		switch fee.Type {
		case "application_fee":
			resp.AppFee = resp.AppFee.Add(fee.Amount)
		default:
			resp.MpFee = resp.MpFee.Add(fee.Amount)
		}
	}
	return resp, nil
}

func (c *MercadoPagoClient) CreatePreference(ctx context.Context, merchantToken string, item PreferenceItem) (string, error) {
	price, _ := item.UnitPrice.Float64()
	body := map[string]interface{}{
		"items": []map[string]interface{}{{
			"title":      item.Title,
			"quantity":   item.Quantity,
			"unit_price": price,
		}},
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/checkout/preferences", merchantToken, body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}
