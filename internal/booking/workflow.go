package booking

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomFinder is the read side of the inventory store used while staging.
type RoomFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Room, error)
}

// Commit carries everything the finalizer persists.  Values are taken
// from the server-side draft, never from client input.
type Commit struct {
	ClientID   uint64
	RoomID     uint64
	Occupants  uint32
	PriceCents uint64
	PaymentID  string
	CheckOutAt time.Time
}

// CommitStore performs the atomic act of reserving the room and
// persisting the reservation.  Implementations must guarantee that two
// concurrent commits against the same room yield exactly one success and
// one ErrRoomUnavailable, and that a failed commit leaves no row behind
// and no room stuck in the unavailable state.
type CommitStore interface {
	CommitReservation(ctx context.Context, c Commit) (*model.Reservation, error)
}

// ConfirmedFunc is invoked after a successful commit, outside the
// transaction.  It is fire-and-forget: errors are the hook's problem.
type ConfirmedFunc func(ctx context.Context, res *model.Reservation, d Draft)

// Workflow orchestrates the reservation flow.  Staging is optimistic: it
// only read-checks availability, so several clients may hold drafts for
// the same room at once.  Exclusivity is enforced solely by the commit
// store's conditional update, which also serves as the commit-time
// re-validation of availability.
type Workflow struct {
	rooms       RoomFinder
	store       CommitStore
	drafts      DraftStore
	onConfirmed ConfirmedFunc
	now         func() time.Time
}

// NewWorkflow wires the workflow.  onConfirmed may be nil when no
// post-commit notification is wanted.
func NewWorkflow(rooms RoomFinder, store CommitStore, drafts DraftStore, onConfirmed ConfirmedFunc) *Workflow {
	if rooms == nil || store == nil || drafts == nil {
		panic("nil dependency passed to NewWorkflow")
	}
	return &Workflow{
		rooms:       rooms,
		store:       store,
		drafts:      drafts,
		onConfirmed: onConfirmed,
		now:         time.Now,
	}
}

// Stage validates the request, computes the price and stores the draft,
// overwriting any previous draft of the same client.  The room is NOT
// locked here; the client can still lose it to a faster committer, which
// surfaces later as ErrRoomUnavailable from Commit.
func (w *Workflow) Stage(ctx context.Context, clientID, roomID uint64, occupants uint32, checkoutAt time.Time) (Draft, error) {
	room, err := w.rooms.FindByID(ctx, roomID)
	if err != nil {
		return Draft{}, err
	}
	if occupants < 1 || occupants > room.Capacity {
		return Draft{}, ErrCapacityExceeded
	}
	now := w.now()
	days, err := StayDays(now, checkoutAt)
	if err != nil {
		return Draft{}, err
	}
	if !room.Available() {
		return Draft{}, ErrRoomUnavailable
	}
	d := Draft{
		ClientID:   clientID,
		RoomID:     room.ID,
		RoomNumber: room.Number,
		Occupants:  occupants,
		CheckOutAt: checkoutAt,
		Days:       days,
		PriceCents: Quote(room.PriceCents, days),
		StagedAt:   now,
	}
	if err := w.drafts.Put(ctx, clientID, d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Peek returns the client's current draft or ErrNoDraft.
func (w *Workflow) Peek(ctx context.Context, clientID uint64) (Draft, error) {
	return w.drafts.Get(ctx, clientID)
}

// Abandon discards the client's draft unconditionally.
func (w *Workflow) Abandon(ctx context.Context, clientID uint64) error {
	return w.drafts.Delete(ctx, clientID)
}

// Commit turns the client's draft into a persisted reservation using the
// payment confirmation identifier as proof of charge.  The draft is
// cleared on success and also when the room was lost to another
// committer, so a stale draft can never point at a committed room.  On
// any other failure (gateway hiccup already handled upstream, storage
// errors here) the draft stays so the client may retry.
func (w *Workflow) Commit(ctx context.Context, clientID uint64, confirmationID string) (*model.Reservation, error) {
	d, err := w.drafts.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	res, err := w.store.CommitReservation(ctx, Commit{
		ClientID:   clientID,
		RoomID:     d.RoomID,
		Occupants:  d.Occupants,
		PriceCents: d.PriceCents,
		PaymentID:  confirmationID,
		CheckOutAt: d.CheckOutAt,
	})
	if err != nil {
		if errors.Is(err, ErrRoomUnavailable) || errors.Is(err, ErrRoomNotFound) {
			// The room is gone for good; force the client to restart
			// the flow with a fresh room selection.
			_ = w.drafts.Delete(ctx, clientID)
		}
		return nil, err
	}
	_ = w.drafts.Delete(ctx, clientID)
	if w.onConfirmed != nil {
		w.onConfirmed(ctx, res, d)
	}
	return res, nil
}
