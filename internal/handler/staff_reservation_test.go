package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

type fakeStaffLister struct {
	list func(ctx context.Context, scope repository.StaffScope, page, pageSize int) ([]repository.StaffReservationDetail, int64, error)
}

func (f *fakeStaffLister) ListForStaffPaginated(ctx context.Context, scope repository.StaffScope, page, pageSize int) ([]repository.StaffReservationDetail, int64, error) {
	return f.list(ctx, scope, page, pageSize)
}

func newStaffRequest(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/staff/reservations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(5))
	c.Set("role", role)
	return c, rec
}

func TestStaffListScopedForReceptionist(t *testing.T) {
	var gotScope repository.StaffScope
	lister := &fakeStaffLister{
		list: func(_ context.Context, scope repository.StaffScope, page, pageSize int) ([]repository.StaffReservationDetail, int64, error) {
			gotScope = scope
			return nil, 0, nil
		},
	}
	h := NewStaffHandler(lister)

	c, rec := newStaffRequest("RECEPTIONIST")
	require.NoError(t, h.ListReservations(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(5), gotScope.StaffID)
	assert.False(t, gotScope.ViewAll)
}

func TestStaffListUnscopedForManagerAndAdmin(t *testing.T) {
	for _, role := range []string{"MANAGER", "ADMIN"} {
		t.Run(role, func(t *testing.T) {
			var gotScope repository.StaffScope
			lister := &fakeStaffLister{
				list: func(_ context.Context, scope repository.StaffScope, page, pageSize int) ([]repository.StaffReservationDetail, int64, error) {
					gotScope = scope
					return []repository.StaffReservationDetail{{ClientID: 9}}, 1, nil
				},
			}
			h := NewStaffHandler(lister)

			c, rec := newStaffRequest(role)
			require.NoError(t, h.ListReservations(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, gotScope.ViewAll)
		})
	}
}
