package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
)

// GatewayError carries the upstream status and raw body so callers can pass
// the gateway's own error envelope through verbatim.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway returned %d: %s", e.StatusCode, e.Body)
}

// ChargeRequest is the transaction payload forwarded to the gateway.
type ChargeRequest struct {
	OrderRef string  `json:"order_ref"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Customer string  `json:"customer,omitempty"`
	Phone    string  `json:"phone,omitempty"`
}

// GatewayResponse is the gateway's transaction envelope.
type GatewayResponse struct {
	Status         string `json:"status"`
	TransactionRef string `json:"transaction_ref"`
	Message        string `json:"message,omitempty"`
}

// Client talks to the hosted payment gateway with bearer authentication.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

// NewClient creates a gateway client.
func NewClient(baseURL, token string) *Client {
	return &Client{baseURL: baseURL, token: token, timeout: 15 * time.Second}
}

// Charge forwards a transaction request. The raw body is returned alongside
// the decoded envelope so failures can be mirrored verbatim.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*GatewayResponse, string, error) {
	var body string
	var code int
	err := gout.POST(c.baseURL+"/transactions").
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(gout.H{"Authorization": "Bearer " + c.token}).
		SetJSON(req).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return nil, body, err
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, body, &GatewayError{StatusCode: code, Body: body}
	}

	var resp GatewayResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(body, &resp); err != nil {
		return nil, body, errors.New("payment gateway returned an unreadable envelope")
	}
	return &resp, body, nil
}

// Status polls the transaction status for a gateway reference.
func (c *Client) Status(ctx context.Context, transactionRef string) (*GatewayResponse, string, error) {
	var body string
	var code int
	err := gout.GET(c.baseURL+"/transactions/"+transactionRef).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(gout.H{"Authorization": "Bearer " + c.token}).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return nil, body, err
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, body, &GatewayError{StatusCode: code, Body: body}
	}

	var resp GatewayResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(body, &resp); err != nil {
		return nil, body, errors.New("payment gateway returned an unreadable envelope")
	}
	return &resp, body, nil
}
