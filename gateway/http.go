/*
http.go - HTTP client for a Stripe-style checkout API

ENDPOINTS:
  POST {base}/v1/checkout/sessions        {"plan": token}
       -> {"id": "cs_...", "url": "https://..."}
  GET  {base}/v1/checkout/sessions/{id}
       -> {"id": "cs_...", "payment_status": "paid"|"unpaid", "plan": token}

Non-2xx responses and transport failures map to GatewayError. Response
bodies are decoded strictly enough that a missing session id is also a
gateway error rather than a silent empty checkout.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient implements Gateway against a REST checkout API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a gateway client. baseURL has no trailing
// slash, e.g. "https://pay.example.com".
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type checkoutSessionJSON struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	Plan          string `json:"plan"`
}

func (c *HTTPClient) CreateCheckout(ctx context.Context, planToken string) (CheckoutSession, error) {
	body, _ := json.Marshal(map[string]string{"plan": planToken})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return CheckoutSession{}, &GatewayError{Op: "create_checkout", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	var session checkoutSessionJSON
	if gerr := c.do(req, "create_checkout", &session); gerr != nil {
		return CheckoutSession{}, gerr
	}
	if session.ID == "" || session.URL == "" {
		return CheckoutSession{}, &GatewayError{Op: "create_checkout", Err: fmt.Errorf("incomplete session in response")}
	}
	return CheckoutSession{TransactionID: session.ID, URL: session.URL}, nil
}

func (c *HTTPClient) VerifyTransaction(ctx context.Context, transactionID string) (Verification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/checkout/sessions/"+url.PathEscape(transactionID), nil)
	if err != nil {
		return Verification{}, &GatewayError{Op: "verify_transaction", Err: err}
	}
	c.authorize(req)

	var session checkoutSessionJSON
	if gerr := c.do(req, "verify_transaction", &session); gerr != nil {
		return Verification{}, gerr
	}
	return Verification{Paid: session.PaymentStatus == "paid", PlanToken: session.Plan}, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *HTTPClient) do(req *http.Request, op string, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &GatewayError{Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	return nil
}
