package dto

import "github.com/drivenevents/hotel-booking-service/internal/models"

type BookingIDResponse struct {
	BookingID uint `json:"booking_id"`
}

// RoomResponse is the room snapshot exposed to callers: capacity and hotel
// reference, no audit timestamps.
type RoomResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	HotelID  uint   `json:"hotel_id"`
}

type BookingResponse struct {
	ID   uint         `json:"id"`
	Room RoomResponse `json:"room"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{ID: b.ID}
	if b.Room != nil {
		resp.Room = RoomResponse{
			ID:       b.Room.ID,
			Name:     b.Room.Name,
			Capacity: b.Room.Capacity,
			HotelID:  b.Room.HotelID,
		}
	}
	return resp
}
