package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// StripeGateway implements Gateway on top of the Stripe Checkout REST
// API.  Requests are form-encoded and authenticated with the secret key
// as a bearer token.  The success URL is given Stripe's
// {CHECKOUT_SESSION_ID} placeholder so the return redirect carries the
// session id back to us as a query parameter.
type StripeGateway struct {
	secretKey  string
	successURL string
	cancelURL  string
	baseURL    string
	client     *http.Client
}

// NewStripeGateway builds a gateway using the live Stripe endpoint.
func NewStripeGateway(secretKey, successURL, cancelURL string) *StripeGateway {
	return &StripeGateway{
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		baseURL:    defaultStripeBaseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeGatewayWithBaseURL is NewStripeGateway with an overridable
// endpoint, used by tests to point at a stub server.
func NewStripeGatewayWithBaseURL(secretKey, successURL, cancelURL, baseURL string) *StripeGateway {
	g := NewStripeGateway(secretKey, successURL, cancelURL)
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

type stripeSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	PaymentIntent string `json:"payment_intent"`
}

// CreateCharge opens a Checkout session in payment mode with a single
// line item for the full reservation amount.
func (g *StripeGateway) CreateCharge(ctx context.Context, amountCents uint64, description string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", g.successURL+"?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", g.cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatUint(amountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var sess stripeSession
	if err := g.do(req, &sess); err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// ConfirmCharge retrieves the session and returns its payment intent as
// the confirmation id.  Anything other than a paid session is reported
// as ErrPaymentNotCompleted.
func (g *StripeGateway) ConfirmCharge(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrPaymentNotCompleted
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	var sess stripeSession
	if err := g.do(req, &sess); err != nil {
		return "", err
	}
	if sess.PaymentStatus != "paid" || sess.PaymentIntent == "" {
		return "", ErrPaymentNotCompleted
	}
	return sess.PaymentIntent, nil
}

func (g *StripeGateway) do(req *http.Request, out *stripeSession) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrPaymentNotCompleted
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("stripe: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}
