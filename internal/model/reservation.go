package model

import "time"

// Reservation is the persisted record of a paid room booking.  Rows are
// written exactly once by the commit path and never updated afterwards;
// there is no modification flow in this service.
//
// Fields:
//  ID               – primary key identifier.
//  ClientID         – client who paid for the stay.
//  RoomID           – reserved room.
//  AccompanyNumber  – number of occupants for the stay.
//  PaidPriceCents   – amount charged, in cents.
//  PaymentID        – confirmation identifier returned by the payment gateway.
//  CheckOutAt       – end of the stay; the sweep releases the room after this.
//  CreatedAt        – creation timestamp.
type Reservation struct {
	ID              uint64    // reservations.id
	ClientID        uint64    // reservations.client_id
	RoomID          uint64    // reservations.room_id
	AccompanyNumber uint32    // reservations.accompany_number
	PaidPriceCents  uint64    // reservations.paid_price_in_cents
	PaymentID       string    // reservations.payment_id
	CheckOutAt      time.Time // reservations.check_out_at
	CreatedAt       time.Time // reservations.created_at
}
