package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/drivenevents/hotel-booking-service/internal/dto"
	"github.com/drivenevents/hotel-booking-service/internal/middleware"
	"github.com/drivenevents/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/booking", middleware.GatewayIdentity)
	g.GET("", h.GetBooking)
	g.POST("", h.CreateBooking)
	g.PUT("/:bookingId", h.RelocateBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id is required")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), userID, req.RoomID)
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusCreated, dto.BookingIDResponse{BookingID: booking.ID})
}

func (h *BookingHandler) RelocateBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.RelocateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id is required")
	}

	booking, err := h.svc.RelocateBooking(c.Request().Context(), userID, uint(bookingID), req.RoomID)
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusOK, dto.BookingIDResponse{BookingID: booking.ID})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), userID)
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// bookingError translates the service's closed error surface to HTTP:
// missing records are 404, refused admissions 403, everything else 500.
func bookingError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCannotBook):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		// internal faults are never surfaced to callers
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
