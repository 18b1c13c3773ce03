package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// RegisterStaff registers the staff-scoped endpoints under /v1/staff.
// Receptionists, managers and admins may call these; the handler narrows
// what each role actually sees.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleReceptionist, middleware.RoleManager, middleware.RoleAdmin),
	)
	g.GET("/reservations", h.ListReservations)
}
