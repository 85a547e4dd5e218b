package stripe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

type roundTripFunc func(r *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	c, err := NewClient(Options{
		SecretKey:  "sk_test_123",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestNewClientRequiresSecretKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("NewClient accepted an empty secret key")
	}
}

func TestCreateCheckoutSessionEncodesForm(t *testing.T) {
	var captured url.Values
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Fatalf("Authorization = %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured, err = url.ParseQuery(string(body))
		if err != nil {
			t.Fatalf("parse form: %v", err)
		}
		return jsonResponse(200, `{"id":"cs_test_1","url":"https://checkout.stripe.com/c/cs_test_1"}`), nil
	})

	session, err := client.CreateCheckoutSession(context.Background(), CreateSessionParams{
		ProductName:        "Global Merit Award",
		ProductDescription: "Example University",
		Currency:           "usd",
		Amount:             12500,
		CustomerEmail:      "student@example.com",
		Metadata:           map[string]string{"scholarship_id": "L1"},
		SuccessURL:         "https://client.example.com/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          "https://client.example.com/scholarships/L1",
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession returned error: %v", err)
	}
	if session.URL != "https://checkout.stripe.com/c/cs_test_1" {
		t.Fatalf("URL = %q", session.URL)
	}

	checks := map[string]string{
		"mode":                                "payment",
		"line_items[0][price_data][currency]": "usd",
		"line_items[0][price_data][unit_amount]":               "12500",
		"line_items[0][price_data][product_data][name]":        "Global Merit Award",
		"line_items[0][price_data][product_data][description]": "Example University",
		"line_items[0][quantity]":  "1",
		"customer_email":           "student@example.com",
		"metadata[scholarship_id]": "L1",
	}
	for key, want := range checks {
		if got := captured.Get(key); got != want {
			t.Fatalf("form[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestGetCheckoutSessionDecodesRecord(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/checkout/sessions/cs_test_1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		return jsonResponse(200, `{
			"id":"cs_test_1",
			"payment_status":"paid",
			"payment_intent":"pi_123",
			"customer_email":"student@example.com",
			"amount_total":12500,
			"metadata":{"scholarship_id":"L1","student_email":"student@example.com"}
		}`), nil
	})

	session, err := client.GetCheckoutSession(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("GetCheckoutSession returned error: %v", err)
	}
	if session.PaymentStatus != PaymentStatusPaid {
		t.Fatalf("PaymentStatus = %q", session.PaymentStatus)
	}
	if session.PaymentIntent != "pi_123" || session.AmountTotal != 12500 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.Metadata["scholarship_id"] != "L1" {
		t.Fatalf("metadata = %#v", session.Metadata)
	}
}

func TestGetCheckoutSessionSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(404, `{"error":{"type":"invalid_request_error","message":"No such checkout session"}}`), nil
	})

	_, err := client.GetCheckoutSession(context.Background(), "cs_missing")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "No such checkout session") {
		t.Fatalf("error %q does not carry the API message", err)
	}
}

func TestGetCheckoutSessionRequiresID(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("request should not be sent")
		return nil, nil
	})
	if _, err := client.GetCheckoutSession(context.Background(), "  "); err == nil {
		t.Fatal("expected an error for empty session id")
	}
}
