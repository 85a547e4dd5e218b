package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

const defaultTimeout = 15 * time.Second

// PaymentStatusPaid is the session payment status reported by the provider
// once the charge has settled. Anything else means the payment did not
// complete.
const PaymentStatusPaid = "paid"

// CheckoutSession is the provider's authoritative record of a hosted
// checkout flow. PaymentIntent is the permanent reference for the completed
// charge; Metadata carries the values we attached when creating the session.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	CustomerEmail string            `json:"customer_email"`
	AmountTotal   int64             `json:"amount_total"`
	Metadata      map[string]string `json:"metadata"`
}

// CreateSessionParams describes a single-item payment session. Amount is in
// the smallest currency unit.
type CreateSessionParams struct {
	ProductName        string
	ProductDescription string
	Currency           string
	Amount             int64
	CustomerEmail      string
	Metadata           map[string]string
	SuccessURL         string
	CancelURL          string
}

// Options configures a Client. HTTPClient is swapped out in tests.
type Options struct {
	SecretKey  string
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the Stripe Checkout Sessions API. It is the ground truth
// for payment status; callers never derive status locally.
type Client struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SecretKey) == "" {
		return nil, errors.New("stripe secret key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		secretKey: strings.TrimSpace(opts.SecretKey),
		baseURL:   baseURL,
		client:    client,
	}, nil
}

// CreateCheckoutSession opens a hosted payment session and returns it with
// the redirect URL populated.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.ProductDescription != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.ProductDescription)
	}
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.Amount, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("customer_email", params.CustomerEmail)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}
	return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()))
}

// GetCheckoutSession fetches the authoritative session record by reference.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}
	return c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("stripe: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe: %s %s: %s", method, path, apiErrorMessage(resp))
	}
	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("stripe: decode response: %w", err)
	}
	return &session, nil
}

func apiErrorMessage(resp *http.Response) string {
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, payload.Error.Message)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
