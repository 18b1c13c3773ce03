package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo persists reservations and serves the paged listings.
// Reservation rows are immutable; the only write path is Commit, which
// couples the room's conditional status flip and the INSERT in a single
// transaction so a failed commit can never leave a room unavailable
// without a matching reservation.
type ReservationRepo struct {
	db    *sql.DB
	rooms *RoomRepo
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database and room repository.
func NewReservationRepo(db *sql.DB, rooms *RoomRepo) *ReservationRepo {
	if rooms == nil {
		panic("nil room repository passed to NewReservationRepo")
	}
	return &ReservationRepo{db: db, rooms: rooms}
}

// CommitReservation reserves the room and writes the reservation row
// atomically.  On a lost reserve race it returns booking.ErrRoomUnavailable
// and the transaction rolls back, leaving no trace.
func (r *ReservationRepo) CommitReservation(ctx context.Context, c booking.Commit) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.rooms.TryReserveTx(ctx, tx, c.RoomID, c.Occupants); err != nil {
		return nil, err
	}
	const q = `INSERT INTO reservations
	           (client_id, room_id, accompany_number, paid_price_in_cents, payment_id, check_out_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		c.ClientID, c.RoomID, c.Occupants, c.PriceCents, c.PaymentID,
		c.CheckOutAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	rec := &model.Reservation{
		ID:              uint64(id),
		ClientID:        c.ClientID,
		RoomID:          c.RoomID,
		AccompanyNumber: c.Occupants,
		PaidPriceCents:  c.PriceCents,
		PaymentID:       c.PaymentID,
		CheckOutAt:      c.CheckOutAt,
	}
	// Query back the row to populate the DB-generated creation timestamp.
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, id).Scan(&rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return rec, nil
}

// ReservationDetail is a reservation joined with its room and floor for
// display in client listings.
type ReservationDetail struct {
	ID              uint64    `json:"id"`
	RoomID          uint64    `json:"room_id"`
	RoomNumber      uint32    `json:"room_number"`
	FloorNumber     uint32    `json:"floor_number"`
	AccompanyNumber uint32    `json:"accompany_number"`
	PaidPriceCents  uint64    `json:"paid_price_in_cents"`
	PaymentID       string    `json:"payment_id"`
	CheckOutAt      time.Time `json:"check_out_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// StaffReservationDetail extends ReservationDetail with the client's
// identity for staff-facing listings.
type StaffReservationDetail struct {
	ReservationDetail
	ClientID   uint64 `json:"client_id"`
	ClientName string `json:"client_name"`
}

// StaffScope restricts staff listings.  Which scope a staff member gets
// is an authorization concern decided outside this layer; receptionists
// are limited to reservations of clients they approved, while ViewAll
// lifts the restriction for managers and admins.
type StaffScope struct {
	StaffID uint64
	ViewAll bool
}

// ListByClientPaginated returns one page of the client's reservations,
// newest first, along with the total row count for page arithmetic.
func (r *ReservationRepo) ListByClientPaginated(ctx context.Context, clientID uint64, page, pageSize int) ([]ReservationDetail, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE client_id = ?`, clientID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	const q = `SELECT re.id, re.room_id, ro.number, f.number, re.accompany_number,
	                  re.paid_price_in_cents, re.payment_id, re.check_out_at, re.created_at
	           FROM reservations re
	           JOIN rooms ro ON ro.id = re.room_id
	           JOIN floors f ON f.id = ro.floor_id
	           WHERE re.client_id = ?
	           ORDER BY re.created_at DESC, re.id DESC
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, clientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.RoomID, &d.RoomNumber, &d.FloorNumber, &d.AccompanyNumber,
			&d.PaidPriceCents, &d.PaymentID, &d.CheckOutAt, &d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListForStaffPaginated returns one page of reservations visible to the
// given staff scope, newest first, plus the total count.  Scoped staff
// only see reservations whose client they approved.
func (r *ReservationRepo) ListForStaffPaginated(ctx context.Context, scope StaffScope, page, pageSize int) ([]StaffReservationDetail, int64, error) {
	where := ``
	args := []interface{}{}
	if !scope.ViewAll {
		where = `WHERE c.approved_by = ?`
		args = append(args, scope.StaffID)
	}
	countQ := `SELECT COUNT(*) FROM reservations re JOIN clients c ON c.id = re.client_id ` + where
	var total int64
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	q := `SELECT re.id, re.room_id, ro.number, f.number, re.accompany_number,
	             re.paid_price_in_cents, re.payment_id, re.check_out_at, re.created_at,
	             c.id, c.name
	      FROM reservations re
	      JOIN rooms ro ON ro.id = re.room_id
	      JOIN floors f ON f.id = ro.floor_id
	      JOIN clients c ON c.id = re.client_id
	      ` + where + `
	      ORDER BY re.created_at DESC, re.id DESC
	      LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]StaffReservationDetail, 0)
	for rows.Next() {
		var d StaffReservationDetail
		if err := rows.Scan(
			&d.ID, &d.RoomID, &d.RoomNumber, &d.FloorNumber, &d.AccompanyNumber,
			&d.PaidPriceCents, &d.PaymentID, &d.CheckOutAt, &d.CreatedAt,
			&d.ClientID, &d.ClientName,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ReleaseDueRooms reopens rooms whose most recent reservation checked
// out before now.  The due scan and the status flip run as one UPDATE,
// so a commit landing between them cannot have its room released: a
// freshly committed reservation both holds the row lock and pushes
// MAX(check_out_at) into the future, dropping the room out of the due
// set.  Grouping on the room also keeps historical reservations from
// re-releasing a room booked again since.  Returns the number of rooms
// released.
func (r *ReservationRepo) ReleaseDueRooms(ctx context.Context, now time.Time) (int64, error) {
	const q = `UPDATE rooms ro
	           JOIN (SELECT room_id FROM reservations
	                 GROUP BY room_id
	                 HAVING MAX(check_out_at) <= ?) due ON due.room_id = ro.id
	           SET ro.status = ?, ro.updated_at = UTC_TIMESTAMP()
	           WHERE ro.status = ?`
	res, err := r.db.ExecContext(ctx, q,
		now.UTC().Format("2006-01-02 15:04:05"),
		model.RoomStatusAvailable, model.RoomStatusUnavailable,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
