package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/payment"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ReservationFlow is the booking workflow surface the client handlers
// drive.  It is satisfied by *booking.Workflow.
type ReservationFlow interface {
	Stage(ctx context.Context, clientID, roomID uint64, occupants uint32, checkoutAt time.Time) (booking.Draft, error)
	Peek(ctx context.Context, clientID uint64) (booking.Draft, error)
	Abandon(ctx context.Context, clientID uint64) error
	Commit(ctx context.Context, clientID uint64, confirmationID string) (*model.Reservation, error)
}

// ClientReservationLister serves the client's own reservation history.
type ClientReservationLister interface {
	ListByClientPaginated(ctx context.Context, clientID uint64, page, pageSize int) ([]repository.ReservationDetail, int64, error)
}

// ClientHandler serves the client-facing reservation flow: stage a
// draft, hand off to the payment gateway, commit on the success
// redirect, and list past reservations.  JWT authentication and the
// CLIENT role are enforced by middleware before any of these run.
type ClientHandler struct {
	Flow         ReservationFlow
	Gateway      payment.Gateway
	Reservations ClientReservationLister
}

// NewClientHandler constructs a ClientHandler.  All dependencies must be
// non-nil.
func NewClientHandler(flow ReservationFlow, gateway payment.Gateway, reservations ClientReservationLister) *ClientHandler {
	if flow == nil || gateway == nil || reservations == nil {
		panic("nil dependency passed to NewClientHandler")
	}
	return &ClientHandler{Flow: flow, Gateway: gateway, Reservations: reservations}
}

// draftView is the snapshot returned to the client for display and
// payment confirmation.
type draftView struct {
	RoomNumber uint32 `json:"room_number"`
	Occupants  uint32 `json:"accompany_number"`
	Days       int    `json:"days"`
	PriceCents uint64 `json:"price_in_cents"`
	CheckOutAt string `json:"check_out_at"`
}

func toDraftView(d booking.Draft) draftView {
	return draftView{
		RoomNumber: d.RoomNumber,
		Occupants:  d.Occupants,
		Days:       d.Days,
		PriceCents: d.PriceCents,
		CheckOutAt: d.CheckOutAt.UTC().Format(time.RFC3339),
	}
}

// StageReservation handles POST /v1/reservations.  The body carries the
// room, occupant count and requested checkout; the server computes the
// price and stores the draft.  The room is not locked at this point, so
// a 201 here does not guarantee the room at payment time.
func (h *ClientHandler) StageReservation(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		RoomID          uint64 `json:"room_id"`
		AccompanyNumber uint32 `json:"accompany_number"`
		CheckOutAt      string `json:"check_out_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	checkoutAt, err := time.Parse(time.RFC3339, body.CheckOutAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_at must be an RFC3339 timestamp"})
	}
	d, err := h.Flow.Stage(c.Request().Context(), clientID, body.RoomID, body.AccompanyNumber, checkoutAt)
	if err != nil {
		return stageError(c, err)
	}
	return c.JSON(http.StatusCreated, toDraftView(d))
}

func stageError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, booking.ErrCapacityExceeded):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "accompany number exceeds room capacity"})
	case errors.Is(err, booking.ErrInvalidStayWindow):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check out time must be in the future"})
	case errors.Is(err, booking.ErrRoomUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available, please pick another room"})
	}
	log.Printf("reservation: stage failed: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to stage reservation"})
}

// GetDraft handles GET /v1/reservations/draft.  It returns the client's
// current draft snapshot, or 404 when none is staged.
func (h *ClientHandler) GetDraft(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Flow.Peek(c.Request().Context(), clientID)
	if err != nil {
		if errors.Is(err, booking.ErrNoDraft) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no reservation draft"})
		}
		log.Printf("reservation: peek failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load draft"})
	}
	return c.JSON(http.StatusOK, toDraftView(d))
}

// AbandonDraft handles DELETE /v1/reservations/draft.  Discarding is
// idempotent; deleting a missing draft still returns 204.
func (h *ClientHandler) AbandonDraft(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Flow.Abandon(c.Request().Context(), clientID); err != nil {
		log.Printf("reservation: abandon failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to discard draft"})
	}
	return c.NoContent(http.StatusNoContent)
}

// StartPayment handles GET /v1/reservations/payment.  It creates a
// checkout session for the staged draft and returns the gateway URL the
// client should be redirected to.  The draft itself is untouched.
func (h *ClientHandler) StartPayment(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Flow.Peek(c.Request().Context(), clientID)
	if err != nil {
		if errors.Is(err, booking.ErrNoDraft) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no reservation draft"})
		}
		log.Printf("reservation: peek failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load draft"})
	}
	desc := fmt.Sprintf("Room %d reservation for %d day(s)", d.RoomNumber, d.Days)
	sess, err := h.Gateway.CreateCharge(c.Request().Context(), d.PriceCents, desc)
	if err != nil {
		log.Printf("payment: create charge failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment service unavailable, please try again"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": sess.URL})
}

// PaymentReturn handles GET /v1/reservations/success.  The gateway
// redirects here with a session_id query parameter after checkout.  The
// charge is confirmed with the gateway and the draft — read from
// server-side state, never from the redirect payload — is committed.
// On a failed confirmation the draft stays so the client can retry
// payment; on a lost room the draft is cleared and the client must
// restart the flow.
func (h *ClientHandler) PaymentReturn(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
	}
	ctx := c.Request().Context()
	confirmationID, err := h.Gateway.ConfirmCharge(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotCompleted) {
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment not completed, please retry"})
		}
		log.Printf("payment: confirm charge failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment verification failed, please try again"})
	}
	res, err := h.Flow.Commit(ctx, clientID, confirmationID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNoDraft):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no reservation draft"})
		case errors.Is(err, booking.ErrRoomUnavailable), errors.Is(err, booking.ErrRoomNotFound):
			return c.JSON(http.StatusConflict, echo.Map{"error": "the room was taken in the meantime, please start over"})
		}
		log.Printf("reservation: commit failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to finalize reservation"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id":      res.ID,
		"room_id":             res.RoomID,
		"accompany_number":    res.AccompanyNumber,
		"paid_price_in_cents": res.PaidPriceCents,
		"payment_id":          res.PaymentID,
		"check_out_at":        res.CheckOutAt.UTC().Format(time.RFC3339),
	})
}

// ListMyReservations handles GET /v1/my-reservations.  It returns one
// page of the client's reservations, newest first.
func (h *ClientHandler) ListMyReservations(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, pageSize := pageParams(c)
	items, total, err := h.Reservations.ListByClientPaginated(c.Request().Context(), clientID, page, pageSize)
	if err != nil {
		log.Printf("reservation: list for client failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"page":       page,
		"page_size":  pageSize,
		"total":      total,
		"page_count": pageCount(total, pageSize),
	})
}
