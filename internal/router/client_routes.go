package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// RegisterClient registers the client-scoped endpoints under /v1.  All
// routes require a valid JWT and the CLIENT role.  Clients can browse
// floors and rooms, stage a reservation draft, pay for it and finalize,
// and view their own reservations.
func RegisterClient(e *echo.Echo, b *handler.BrowseHandler, h *handler.ClientHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleClient),
	)

	// Browse endpoints.  Availability shown here is a snapshot; the
	// reservation flow re-checks it.
	g.GET("/floors", b.ListFloors)
	g.GET("/floors/:id/rooms", b.ListRoomsByFloor)
	g.GET("/rooms/:id", b.GetRoom)

	// Reservation flow: stage a draft, inspect or discard it, start the
	// checkout, and land back here after payment to finalize.
	g.POST("/reservations", h.StageReservation)
	g.GET("/reservations/draft", h.GetDraft)
	g.DELETE("/reservations/draft", h.AbandonDraft)
	g.GET("/reservations/payment", h.StartPayment)
	g.GET("/reservations/success", h.PaymentReturn)

	g.GET("/my-reservations", h.ListMyReservations)
}
