package dto

type CreateBookingRequest struct {
	RoomID uint `json:"room_id"`
}

type RelocateBookingRequest struct {
	RoomID uint `json:"room_id"`
}
