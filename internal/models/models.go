package models

import "time"

type TicketStatus string

const (
	TicketReserved TicketStatus = "RESERVED"
	TicketPaid     TicketStatus = "PAID"
)

// Enrollment, TicketType, Ticket, Hotel and Room are owned by the
// registration and hotel services; local copies are kept in sync by the
// RabbitMQ consumer and treated as read-only facts.

type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TicketType struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Price         float64   `gorm:"not null" json:"price"`
	IsRemote      bool      `gorm:"not null" json:"is_remote"`
	IncludesHotel bool      `gorm:"not null" json:"includes_hotel"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Ticket struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	EnrollmentID uint         `gorm:"not null" json:"enrollment_id"`
	TicketTypeID uint         `gorm:"not null" json:"ticket_type_id"`
	Status       TicketStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	TicketType *TicketType `gorm:"foreignKey:TicketTypeID" json:"ticket_type,omitempty"`
}

type Hotel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	HotelID   uint      `gorm:"not null" json:"hotel_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// Booking binds one user to one room. The owner never changes after
// creation; only the room reference moves, via relocation. Occupancy of a
// room is derived by counting bookings, never stored on the room.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	RoomID    uint      `gorm:"not null" json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
