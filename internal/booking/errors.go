// Package booking implements the room reservation workflow: staging a
// draft, quoting its price, committing it after payment confirmation and
// sweeping rooms whose stay has ended.  All failures a client can recover
// from are expressed as the sentinel errors below so that handlers can
// translate them into user-facing responses.
package booking

import "errors"

// ErrRoomNotFound is returned when the requested room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomUnavailable is returned when the room is taken, either at
// staging time (read check) or at commit time (lost the reserve race).
var ErrRoomUnavailable = errors.New("room is not available")

// ErrCapacityExceeded is returned when the requested occupant count is
// invalid for the room.
var ErrCapacityExceeded = errors.New("occupants exceed room capacity")

// ErrInvalidStayWindow is returned when the requested checkout is not
// strictly in the future.
var ErrInvalidStayWindow = errors.New("checkout must be in the future")

// ErrNoDraft is returned when an operation requires a staged draft and
// none exists for the client (never staged, abandoned or expired).
var ErrNoDraft = errors.New("no reservation draft")
