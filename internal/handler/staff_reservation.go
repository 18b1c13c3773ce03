package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// StaffReservationLister serves the staff-facing reservation listings.
type StaffReservationLister interface {
	ListForStaffPaginated(ctx context.Context, scope repository.StaffScope, page, pageSize int) ([]repository.StaffReservationDetail, int64, error)
}

// StaffHandler serves reservation listings to hotel staff.  The scope a
// staff member gets is derived from the role claim: receptionists only
// see reservations of clients they approved, managers and admins see
// everything.  Which clients a receptionist approved lives in the
// account service's schema and is joined in the repository.
type StaffHandler struct {
	Reservations StaffReservationLister
}

// NewStaffHandler constructs a StaffHandler.
func NewStaffHandler(reservations StaffReservationLister) *StaffHandler {
	if reservations == nil {
		panic("nil dependency passed to NewStaffHandler")
	}
	return &StaffHandler{Reservations: reservations}
}

// ListReservations handles GET /v1/staff/reservations.
func (h *StaffHandler) ListReservations(c echo.Context) error {
	staffID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, _ := c.Get("role").(string)
	scope := repository.StaffScope{
		StaffID: staffID,
		ViewAll: role == middleware.RoleManager || role == middleware.RoleAdmin,
	}
	page, pageSize := pageParams(c)
	items, total, err := h.Reservations.ListForStaffPaginated(c.Request().Context(), scope, page, pageSize)
	if err != nil {
		log.Printf("reservation: list for staff failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"page":       page,
		"page_size":  pageSize,
		"total":      total,
		"page_count": pageCount(total, pageSize),
	})
}
