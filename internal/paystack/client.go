package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wknd-backend/internal/status"
)

type ClientConfig struct {
	BaseURL   string `json:"baseUrl"`
	SecretKey string `json:"secretKey"`
}

type Client struct {
	// baseURL is the base url of the Paystack API.
	baseURL string

	// secretKey authenticates every call as a bearer token.
	secretKey string

	// hc is the http client.
	hc *http.Client
}

// NewClient creates a new instance of the Paystack client.
func NewClient(c *ClientConfig) *Client {
	return &Client{
		baseURL:   c.BaseURL,
		secretKey: c.SecretKey,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CustomField is contact metadata embedded in the transaction so the
// gateway dashboard shows who the payment belongs to.
type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

type InitializeRequest struct {
	Email       string
	FullName    string
	Phone       string
	EventID     string
	AmountMinor int64
	Currency    string
	Reference   string
	CallbackURL string
}

type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction is the gateway's view of a verified transaction. Raw keeps
// the full data object so the persisted payment snapshot stays opaque.
type Transaction struct {
	ID              int64           `json:"id"`
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	Amount          int64           `json:"amount"`
	Currency        string          `json:"currency"`
	Channel         string          `json:"channel"`
	GatewayResponse string          `json:"gateway_response"`
	PaidAt          string          `json:"paid_at"`
	Customer        Customer        `json:"customer"`
	Raw             json.RawMessage `json:"-"`
}

type Customer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Initialize calls the remote initialize-transaction endpoint. The amount
// must already be in minor units with the service fee applied.
func (c *Client) Initialize(ctx context.Context, f *InitializeRequest) (*InitializeResult, error) {
	payload := map[string]any{
		"email":        f.Email,
		"amount":       f.AmountMinor,
		"currency":     f.Currency,
		"reference":    f.Reference,
		"callback_url": f.CallbackURL,
		"metadata": map[string]any{
			"eventId":  f.EventID,
			"fullName": f.FullName,
			"phone":    f.Phone,
			"custom_fields": []CustomField{
				{DisplayName: "Event ID", VariableName: "event_id", Value: f.EventID},
				{DisplayName: "Full Name", VariableName: "full_name", Value: f.FullName},
				{DisplayName: "Phone", VariableName: "phone", Value: f.Phone},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("initializeTransaction: json.Marshal: %v", err)
	}

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/transaction/initialize"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("initializeTransaction: http.NewReq: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secretKey))

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &status.GatewayError{Op: "initializeTransaction", Msg: "gateway unreachable", Err: err}
	}
	defer resp.Body.Close()

	var reply struct {
		Status  bool             `json:"status"`
		Message string           `json:"message"`
		Data    InitializeResult `json:"data"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("initializeTransaction: json.Decode: %v", err)
	}
	if !reply.Status {
		return nil, &status.GatewayError{Op: "initializeTransaction", Msg: reply.Message}
	}

	return &reply.Data, nil
}

// Verify calls the remote verify-transaction endpoint and returns the
// gateway's transaction record. A falsy status flag fails the call; the
// transaction's own status is left for the caller to judge.
func (c *Client) Verify(ctx context.Context, reference string) (*Transaction, error) {
	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/transaction/verify/%s", _baseURL.String(), url.PathEscape(reference)), nil)
	if err != nil {
		return nil, fmt.Errorf("verifyTransaction: http.NewReq: %v", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secretKey))

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &status.GatewayError{Op: "verifyTransaction", Msg: "gateway unreachable", Err: err}
	}
	defer resp.Body.Close()

	var reply struct {
		Status  bool            `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("verifyTransaction: json.Decode: %v", err)
	}
	if !reply.Status {
		return nil, &status.GatewayError{Op: "verifyTransaction", Msg: reply.Message}
	}

	var tx Transaction
	if err := json.Unmarshal(reply.Data, &tx); err != nil {
		return nil, fmt.Errorf("verifyTransaction: reply.Data: %v", err)
	}
	tx.Raw = reply.Data

	return &tx, nil
}
