package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// BrowseHandler lets authenticated clients browse floors and rooms when
// choosing what to reserve.  Room availability in these listings is a
// snapshot only; staging re-checks it and commit enforces it.
type BrowseHandler struct {
	FloorRepo *repository.FloorRepo
	RoomRepo  *repository.RoomRepo
}

// NewBrowseHandler constructs a BrowseHandler.  Both repositories must
// be non-nil.
func NewBrowseHandler(floorRepo *repository.FloorRepo, roomRepo *repository.RoomRepo) *BrowseHandler {
	if floorRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{FloorRepo: floorRepo, RoomRepo: roomRepo}
}

// ListFloors handles GET /v1/floors.
func (h *BrowseHandler) ListFloors(c echo.Context) error {
	floors, err := h.FloorRepo.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("browse: list floors failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load floors"})
	}
	items := make([]echo.Map, 0, len(floors))
	for _, f := range floors {
		items = append(items, echo.Map{
			"id":     f.ID,
			"name":   f.Name,
			"number": f.Number,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListRoomsByFloor handles GET /v1/floors/:id/rooms.
func (h *BrowseHandler) ListRoomsByFloor(c echo.Context) error {
	floorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || floorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	rooms, err := h.RoomRepo.ListByFloor(c.Request().Context(), floorID)
	if err != nil {
		log.Printf("browse: list rooms failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	items := make([]echo.Map, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, echo.Map{
			"id":             r.ID,
			"number":         r.Number,
			"capacity":       r.Capacity,
			"price_in_cents": r.PriceCents,
			"available":      r.Available(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRoom handles GET /v1/rooms/:id, returning a single room so the
// client can re-verify details before staging.
func (h *BrowseHandler) GetRoom(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	r, err := h.RoomRepo.FindByID(c.Request().Context(), roomID)
	if err != nil {
		if errors.Is(err, booking.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		log.Printf("browse: get room failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":             r.ID,
		"floor_id":       r.FloorID,
		"number":         r.Number,
		"capacity":       r.Capacity,
		"price_in_cents": r.PriceCents,
		"available":      r.Available(),
	})
}
