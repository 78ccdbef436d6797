package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// PublicHandler exposes the unauthenticated browse surface: hotels
// and their room categories.  Responses are sanitized for guests;
// vendor-only fields never leave this layer.
type PublicHandler struct {
	HotelRepo *repository.HotelRepo
	RoomRepo  *repository.RoomRepo
}

// NewPublicHandler constructs a PublicHandler.  Both repositories
// must be non-nil.
func NewPublicHandler(hotelRepo *repository.HotelRepo, roomRepo *repository.RoomRepo) *PublicHandler {
	if hotelRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{HotelRepo: hotelRepo, RoomRepo: roomRepo}
}

// publicHotel is the guest-facing hotel shape.
type publicHotel struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
}

// publicRoom is the guest-facing room shape.
type publicRoom struct {
	ID            uint64  `json:"id"`
	HotelID       uint64  `json:"hotel_id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	PricePerNight int64   `json:"price_per_night"`
	Capacity      uint32  `json:"capacity"`
}

func toPublicHotel(h *model.Hotel) publicHotel {
	in := h.CheckInTime
	if in == "" {
		in = "13:00"
	}
	out := h.CheckOutTime
	if out == "" {
		out = "12:00"
	}
	return publicHotel{ID: h.ID, Name: h.Name, City: h.City, Address: h.Address,
		CheckInTime: in, CheckOutTime: out}
}

// GetHotels handles GET /v1/hotels.  The optional ?city= query
// filters by city.
func (h *PublicHandler) GetHotels(c echo.Context) error {
	hotels, err := h.HotelRepo.ListActive(c.Request().Context(), c.QueryParam("city"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicHotel, 0, len(hotels))
	for i := range hotels {
		out = append(out, toPublicHotel(&hotels[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GetHotel handles GET /v1/hotels/:id.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	hotel, err := h.HotelRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toPublicHotel(hotel))
}

// GetHotelRooms handles GET /v1/hotels/:id/rooms.  It returns the
// active room categories of a hotel ordered by nightly price.
func (h *PublicHandler) GetHotelRooms(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	if _, err := h.HotelRepo.GetByID(c.Request().Context(), id); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.RoomRepo.ListByHotel(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicRoom, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, publicRoom{ID: r.ID, HotelID: r.HotelID, Name: r.Name,
			Description: r.Description, PricePerNight: r.PricePerNight, Capacity: r.Capacity})
	}
	return c.JSON(http.StatusOK, out)
}

// GetRoom handles GET /v1/rooms/:id.
func (h *PublicHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.RoomRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, publicRoom{ID: room.ID, HotelID: room.HotelID, Name: room.Name,
		Description: room.Description, PricePerNight: room.PricePerNight, Capacity: room.Capacity})
}
