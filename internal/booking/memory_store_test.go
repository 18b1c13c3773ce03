package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testDraft(clientID, roomID uint64) Draft {
	return Draft{
		ClientID:   clientID,
		RoomID:     roomID,
		RoomNumber: 101,
		Occupants:  2,
		CheckOutAt: time.Date(2025, 6, 12, 11, 0, 0, 0, time.UTC),
		Days:       2,
		PriceCents: 25000,
		StagedAt:   time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestMemoryDraftStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore(30 * time.Minute)

	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNoDraft)

	d := testDraft(1, 7)
	assert.NoError(t, s.Put(ctx, 1, d))

	got, err := s.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, d, got)

	assert.NoError(t, s.Delete(ctx, 1))
	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNoDraft)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, 1))
}

func TestMemoryDraftStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore(30 * time.Minute)

	assert.NoError(t, s.Put(ctx, 1, testDraft(1, 7)))
	second := testDraft(1, 9)
	assert.NoError(t, s.Put(ctx, 1, second))

	got, err := s.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, uint64(9), got.RoomID)
}

func TestMemoryDraftStoreIsolatedPerClient(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore(30 * time.Minute)

	assert.NoError(t, s.Put(ctx, 1, testDraft(1, 7)))
	assert.NoError(t, s.Put(ctx, 2, testDraft(2, 8)))

	assert.NoError(t, s.Delete(ctx, 1))
	got, err := s.Get(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint64(8), got.RoomID)
}

func TestMemoryDraftStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore(30 * time.Minute)

	current := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	assert.NoError(t, s.Put(ctx, 1, testDraft(1, 7)))

	// Just before expiry the draft is still there.
	current = current.Add(29 * time.Minute)
	_, err := s.Get(ctx, 1)
	assert.NoError(t, err)

	// At the expiry instant the draft is gone.
	current = current.Add(time.Minute)
	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNoDraft)

	// Re-staging resets the clock.
	assert.NoError(t, s.Put(ctx, 1, testDraft(1, 7)))
	current = current.Add(29 * time.Minute)
	_, err = s.Get(ctx, 1)
	assert.NoError(t, err)
}
