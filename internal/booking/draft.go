package booking

import (
	"context"
	"time"
)

// Draft is a staged, not-yet-committed reservation proposal.  Drafts are
// ephemeral: they live only in the draft store, keyed by client, and are
// destroyed on commit, explicit abandonment or expiry.  The price and day
// count are computed at staging time and used verbatim at commit so the
// client can never tamper with them through the payment redirect.
//
// Fields:
//  ClientID   – client the draft belongs to.
//  RoomID     – room being reserved.
//  RoomNumber – human-facing room number, for display and charge description.
//  Occupants  – requested occupant count.
//  CheckOutAt – requested end of stay.
//  Days       – computed stay length in whole days.
//  PriceCents – computed total charge in cents.
//  StagedAt   – when the draft was created.
type Draft struct {
	ClientID   uint64    `json:"client_id"`
	RoomID     uint64    `json:"room_id"`
	RoomNumber uint32    `json:"room_number"`
	Occupants  uint32    `json:"occupants"`
	CheckOutAt time.Time `json:"check_out_at"`
	Days       int       `json:"days"`
	PriceCents uint64    `json:"price_cents"`
	StagedAt   time.Time `json:"staged_at"`
}

// DraftStore is the keyed holding area for reservation drafts.  At most
// one draft exists per client; Put overwrites unconditionally (last write
// wins).  Get must treat an expired draft as absent and return
// ErrNoDraft.  Delete is idempotent.
type DraftStore interface {
	Put(ctx context.Context, clientID uint64, d Draft) error
	Get(ctx context.Context, clientID uint64) (Draft, error)
	Delete(ctx context.Context, clientID uint64) error
}
