package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2/clientcredentials"

	appgateway "github.com/faturo-inc/faturo/internal/application/payment/gateway"
	"github.com/faturo-inc/faturo/internal/shared/config"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

// HTTPClient talks to the payment provider's REST API. Authentication is
// OAuth client credentials; the token source refreshes transparently and is
// shared across requests.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  logger.Interface
}

func NewHTTPClient(cfg config.GatewayConfig, log logger.Interface) *HTTPClient {
	oauthCfg := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	client := oauthCfg.Client(context.Background())
	client.Timeout = cfg.Timeout()

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		client:  client,
		logger:  log.Named("payment-gateway"),
	}
}

type chargeRequestBody struct {
	Reference     string `json:"reference"`
	CustomerID    string `json:"customer_id"`
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	Description   string `json:"description,omitempty"`
}

type chargeResponseBody struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	RefusalReason string `json:"refusal_reason"`
}

type customerRequestBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document,omitempty"`
}

type customerResponseBody struct {
	ID string `json:"id"`
}

type cardRequestBody struct {
	CardToken string `json:"card_token"`
}

type cardResponseBody struct {
	ID string `json:"id"`
}

func (c *HTTPClient) MakePayment(ctx context.Context, req appgateway.ChargeRequest) (appgateway.ChargeResult, error) {
	body := chargeRequestBody{
		Reference:     req.Reference,
		CustomerID:    req.CustomerID,
		AmountInCents: req.AmountInCents,
		Currency:      req.Currency,
		Description:   req.Description,
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/charges", body)
	if err != nil {
		return appgateway.ChargeResult{}, err
	}

	return decodeChargeResult(raw)
}

func (c *HTTPClient) GetPayment(ctx context.Context, externalID string) (appgateway.ChargeResult, error) {
	path := "/v1/charges/" + url.PathEscape(externalID)

	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return appgateway.ChargeResult{}, err
	}

	return decodeChargeResult(raw)
}

func (c *HTTPClient) RegisterCustomer(ctx context.Context, customer appgateway.Customer) (appgateway.CustomerResult, error) {
	body := customerRequestBody{
		Name:     customer.Name,
		Email:    customer.Email,
		Document: customer.Document,
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/customers", body)
	if err != nil {
		return appgateway.CustomerResult{}, err
	}

	var resp customerResponseBody
	if err := json.Unmarshal(raw, &resp); err != nil {
		return appgateway.CustomerResult{}, fmt.Errorf("failed to decode customer response: %w", err)
	}
	if resp.ID == "" {
		return appgateway.CustomerResult{}, fmt.Errorf("gateway returned customer without id")
	}

	return appgateway.CustomerResult{CustomerID: resp.ID, RawPayload: raw}, nil
}

func (c *HTTPClient) RegisterCreditCard(ctx context.Context, customerID, cardToken string) (appgateway.CardResult, error) {
	path := fmt.Sprintf("/v1/customers/%s/cards", url.PathEscape(customerID))

	raw, err := c.do(ctx, http.MethodPost, path, cardRequestBody{CardToken: cardToken})
	if err != nil {
		return appgateway.CardResult{}, err
	}

	var resp cardResponseBody
	if err := json.Unmarshal(raw, &resp); err != nil {
		return appgateway.CardResult{}, fmt.Errorf("failed to decode card response: %w", err)
	}
	if resp.ID == "" {
		return appgateway.CardResult{}, fmt.Errorf("gateway returned card without id")
	}

	return appgateway.CardResult{CreditCardID: resp.ID, RawPayload: raw}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnw("gateway returned error status",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("gateway responded %d: %s", resp.StatusCode, raw)
	}

	return raw, nil
}

func decodeChargeResult(raw []byte) (appgateway.ChargeResult, error) {
	var resp chargeResponseBody
	if err := json.Unmarshal(raw, &resp); err != nil {
		return appgateway.ChargeResult{}, fmt.Errorf("failed to decode charge response: %w", err)
	}
	if resp.ID == "" {
		return appgateway.ChargeResult{}, fmt.Errorf("gateway returned charge without id")
	}

	return appgateway.ChargeResult{
		ExternalID:    resp.ID,
		Status:        resp.Status,
		RefusalReason: resp.RefusalReason,
		RawPayload:    raw,
	}, nil
}
