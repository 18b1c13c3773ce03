package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// fakeInventory backs both the RoomFinder and CommitStore sides of the
// workflow with the same conditional-update semantics the repository
// implements: commit succeeds only when it is the one to flip the room
// from available to unavailable.
type fakeInventory struct {
	mu           sync.Mutex
	rooms        map[uint64]*model.Room
	reservations []model.Reservation
	nextID       uint64
}

func newFakeInventory(rooms ...*model.Room) *fakeInventory {
	f := &fakeInventory{rooms: make(map[uint64]*model.Room), nextID: 1}
	for _, r := range rooms {
		f.rooms[r.ID] = r
	}
	return f
}

func (f *fakeInventory) FindByID(_ context.Context, id uint64) (*model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeInventory) CommitReservation(_ context.Context, c Commit) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[c.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if c.Occupants > r.Capacity {
		return nil, ErrCapacityExceeded
	}
	if r.Status != model.RoomStatusAvailable {
		return nil, ErrRoomUnavailable
	}
	r.Status = model.RoomStatusUnavailable
	res := model.Reservation{
		ID:              f.nextID,
		ClientID:        c.ClientID,
		RoomID:          c.RoomID,
		AccompanyNumber: c.Occupants,
		PaidPriceCents:  c.PriceCents,
		PaymentID:       c.PaymentID,
		CheckOutAt:      c.CheckOutAt,
		CreatedAt:       time.Now(),
	}
	f.nextID++
	f.reservations = append(f.reservations, res)
	return &res, nil
}

func availableRoom(id uint64, number, capacity uint32, priceCents uint64) *model.Room {
	return &model.Room{
		ID:         id,
		FloorID:    1,
		Number:     number,
		Capacity:   capacity,
		PriceCents: priceCents,
		Status:     model.RoomStatusAvailable,
	}
}

func newTestWorkflow(inv *fakeInventory, onConfirmed ConfirmedFunc) (*Workflow, *MemoryDraftStore) {
	drafts := NewMemoryDraftStore(30 * time.Minute)
	w := NewWorkflow(inv, inv, drafts, onConfirmed)
	w.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }
	return w, drafts
}

func TestStageComputesPriceAndStoresDraft(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory(availableRoom(7, 101, 3, 12500))
	w, drafts := newTestWorkflow(inv, nil)

	checkout := time.Date(2025, 6, 13, 11, 0, 0, 0, time.UTC)
	d, err := w.Stage(ctx, 1, 7, 2, checkout)
	assert.NoError(t, err)
	assert.Equal(t, 3, d.Days)
	assert.Equal(t, uint64(37500), d.PriceCents)
	assert.Equal(t, uint32(101), d.RoomNumber)

	stored, err := drafts.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, d, stored)
}

func TestStageRejectsUnknownRoom(t *testing.T) {
	w, drafts := newTestWorkflow(newFakeInventory(), nil)

	_, err := w.Stage(context.Background(), 1, 99, 1, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = drafts.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestStageRejectsBadOccupantCounts(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory(availableRoom(7, 101, 2, 12500))
	w, drafts := newTestWorkflow(inv, nil)
	checkout := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	_, err := w.Stage(ctx, 1, 7, 0, checkout)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	_, err = w.Stage(ctx, 1, 7, 3, checkout)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	_, err = drafts.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestStageRejectsInvalidStayWindow(t *testing.T) {
	inv := newFakeInventory(availableRoom(7, 101, 2, 12500))
	w, _ := newTestWorkflow(inv, nil)

	_, err := w.Stage(context.Background(), 1, 7, 1, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidStayWindow)
}

func TestStageRejectsUnavailableRoom(t *testing.T) {
	room := availableRoom(7, 101, 2, 12500)
	room.Status = model.RoomStatusUnavailable
	w, _ := newTestWorkflow(newFakeInventory(room), nil)

	_, err := w.Stage(context.Background(), 1, 7, 1, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestStageOverwritesPreviousDraft(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory(
		availableRoom(7, 101, 2, 12500),
		availableRoom(8, 102, 4, 20000),
	)
	w, drafts := newTestWorkflow(inv, nil)
	checkout := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	_, err := w.Stage(ctx, 1, 7, 1, checkout)
	assert.NoError(t, err)
	_, err = w.Stage(ctx, 1, 8, 3, checkout)
	assert.NoError(t, err)

	d, err := drafts.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, uint64(8), d.RoomID)
	assert.Equal(t, uint32(3), d.Occupants)
}

func TestCommitWithoutDraft(t *testing.T) {
	inv := newFakeInventory(availableRoom(7, 101, 2, 12500))
	w, _ := newTestWorkflow(inv, nil)

	_, err := w.Commit(context.Background(), 1, "conf-1")
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.Empty(t, inv.reservations)
	assert.Equal(t, model.RoomStatusAvailable, inv.rooms[7].Status)
}

func TestCommitPersistsReservationAndClearsDraft(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory(availableRoom(7, 101, 3, 12500))

	var confirmed []uint64
	onConfirmed := func(_ context.Context, res *model.Reservation, _ Draft) {
		confirmed = append(confirmed, res.ID)
	}
	w, drafts := newTestWorkflow(inv, onConfirmed)

	checkout := time.Date(2025, 6, 13, 11, 0, 0, 0, time.UTC)
	_, err := w.Stage(ctx, 1, 7, 2, checkout)
	assert.NoError(t, err)

	res, err := w.Commit(ctx, 1, "conf-abc")
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), res.ClientID)
	assert.Equal(t, uint64(7), res.RoomID)
	assert.Equal(t, uint32(2), res.AccompanyNumber)
	assert.Equal(t, uint64(37500), res.PaidPriceCents)
	assert.Equal(t, "conf-abc", res.PaymentID)
	assert.True(t, res.CheckOutAt.Equal(checkout))

	assert.Equal(t, model.RoomStatusUnavailable, inv.rooms[7].Status)
	assert.Equal(t, []uint64{res.ID}, confirmed)

	_, err = drafts.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNoDraft)

	// Committing again without re-staging fails cleanly.
	_, err = w.Commit(ctx, 1, "conf-abc")
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.Len(t, inv.reservations, 1)
}

func TestCommitLostRoomClearsDraft(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory(availableRoom(7, 101, 3, 12500))
	w, drafts := newTestWorkflow(inv, nil)
	checkout := time.Date(2025, 6, 13, 11, 0, 0, 0, time.UTC)

	// Both clients stage the same room; neither staging locks it.
	_, err := w.Stage(ctx, 1, 7, 1, checkout)
	assert.NoError(t, err)
	_, err = w.Stage(ctx, 2, 7, 1, checkout)
	assert.NoError(t, err)

	_, err = w.Commit(ctx, 1, "conf-winner")
	assert.NoError(t, err)

	_, err = w.Commit(ctx, 2, "conf-loser")
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// The loser's draft is cleared so it cannot point at a taken room.
	_, err = drafts.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNoDraft)
	assert.Len(t, inv.reservations, 1)
	assert.Equal(t, uint64(1), inv.reservations[0].ClientID)
}

func TestConcurrentCommitsYieldExactlyOneReservation(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory(availableRoom(7, 101, 4, 12500))
	w, _ := newTestWorkflow(inv, nil)
	checkout := time.Date(2025, 6, 13, 11, 0, 0, 0, time.UTC)

	const clients = 8
	for id := uint64(1); id <= clients; id++ {
		_, err := w.Stage(ctx, id, 7, 1, checkout)
		assert.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = w.Commit(ctx, uint64(i+1), "conf")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrRoomUnavailable)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, inv.reservations, 1)
	assert.Equal(t, model.RoomStatusUnavailable, inv.rooms[7].Status)
}
