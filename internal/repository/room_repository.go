package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo is the inventory store.  Room status is only ever changed
// through conditional updates guarded by the expected prior state:
// TryReserveTx here flips available to unavailable, and the sweep's
// ReleaseDueRooms flips it back.  A status transition either matches
// the expected prior state and affects the row, or affects zero rows
// and is reported as such, so commit and sweep can never lose each
// other's writes.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// FindByID loads a single room.  It returns booking.ErrRoomNotFound
// when no such room exists.
func (r *RoomRepo) FindByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, floor_id, number, capacity, price, status, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rm.ID, &rm.FloorID, &rm.Number, &rm.Capacity, &rm.PriceCents, &rm.Status,
		&rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByFloor returns all rooms of a floor ordered by room number, for
// client browsing.  Availability is included so the UI can grey out
// taken rooms, but it is only a snapshot; staging re-checks it.
func (r *RoomRepo) ListByFloor(ctx context.Context, floorID uint64) ([]model.Room, error) {
	const q = `SELECT id, floor_id, number, capacity, price, status, created_at, updated_at
	           FROM rooms WHERE floor_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(
			&rm.ID, &rm.FloorID, &rm.Number, &rm.Capacity, &rm.PriceCents, &rm.Status,
			&rm.CreatedAt, &rm.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// TryReserveTx atomically flips the room to unavailable within the
// given transaction.  The single UPDATE is guarded by the expected
// prior status and the capacity requirement, so two concurrent commits
// on the same room produce exactly one affected row between them.  When
// zero rows are affected the room is re-read to classify the failure as
// not-found, capacity or availability.
func (r *RoomRepo) TryReserveTx(ctx context.Context, tx *sql.Tx, roomID uint64, occupants uint32) error {
	const q = `UPDATE rooms SET status = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND status = ? AND capacity >= ?`
	res, err := tx.ExecContext(ctx, q, model.RoomStatusUnavailable, roomID, model.RoomStatusAvailable, occupants)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var capacity uint32
	var status string
	err = tx.QueryRowContext(ctx, `SELECT capacity, status FROM rooms WHERE id = ?`, roomID).Scan(&capacity, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrRoomNotFound
		}
		return err
	}
	if occupants > capacity {
		return booking.ErrCapacityExceeded
	}
	return booking.ErrRoomUnavailable
}
