// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation commit
// succeeds.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	ClientID        uint64 `json:"client_id"`
	RoomID          uint64 `json:"room_id"`
	RoomNumber      uint32 `json:"room_number"`
	AccompanyNumber uint32 `json:"accompany_number"`
	Days            int    `json:"days"`
	PaidPriceCents  uint64 `json:"paid_price_in_cents"`
	PaymentID       string `json:"payment_id"`
	CheckOutAt      string `json:"check_out_at"`
	ConfirmedAt     string `json:"confirmed_at"`
}
