package model

import "time"

// Room status values.  A room is either open for new reservations or
// taken by an active one.  Status only changes through the conditional
// updates in the repository layer: reserve flips available to
// unavailable, release flips it back.
const (
	RoomStatusAvailable   = "available"
	RoomStatusUnavailable = "unavailable"
)

// Room represents a single bookable hotel room.  Prices are stored in
// minor currency units (cents) to avoid floating point arithmetic.
//
// Fields:
//  ID         – primary key identifier.
//  FloorID    – floor the room belongs to.
//  Number     – human-facing room number (unique per hotel).
//  Capacity   – maximum number of occupants.
//  PriceCents – nightly rate in cents.
//  Status     – "available" or "unavailable".
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Room struct {
	ID         uint64    // rooms.id
	FloorID    uint64    // rooms.floor_id
	Number     uint32    // rooms.number
	Capacity   uint32    // rooms.capacity
	PriceCents uint64    // rooms.price (minor units)
	Status     string    // rooms.status
	CreatedAt  time.Time // rooms.created_at
	UpdatedAt  time.Time // rooms.updated_at
}

// Available reports whether the room can currently accept a new
// reservation.
func (r *Room) Available() bool {
	return r.Status == RoomStatusAvailable
}
