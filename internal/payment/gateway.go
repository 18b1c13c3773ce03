// Package payment adapts the external card checkout service.  The core
// never sees card data: it creates a charge, redirects the client to the
// gateway's hosted page, and later confirms the charge using the session
// identifier the gateway appends to the return redirect.
package payment

import (
	"context"
	"errors"
)

// ErrPaymentNotCompleted is returned by ConfirmCharge when the checkout
// session exists but was not paid, or the session id is unknown.  The
// caller must leave the reservation draft intact so the client can retry
// payment.
var ErrPaymentNotCompleted = errors.New("payment not completed")

// CheckoutSession is the gateway-hosted payment page for one charge.
//
// Fields:
//  ID  – opaque session identifier, echoed back on the success redirect.
//  URL – hosted page the client is redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway is the payment collaborator consumed by the reservation flow.
type Gateway interface {
	// CreateCharge opens a checkout session for the given amount in
	// minor currency units.
	CreateCharge(ctx context.Context, amountCents uint64, description string) (*CheckoutSession, error)
	// ConfirmCharge verifies that the session was paid and returns the
	// confirmation identifier proving the charge, or
	// ErrPaymentNotCompleted.
	ConfirmCharge(ctx context.Context, sessionID string) (string, error)
}
