package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drivenevents/hotel-booking-service/internal/models"
	"github.com/drivenevents/hotel-booking-service/internal/repository"
	"github.com/drivenevents/hotel-booking-service/pkg/rabbitmq"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The service exposes a closed error surface: everything is either a
// missing record, a refused admission, or an internal failure. Stage errors
// wrap one of these sentinels; handlers match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrCannotBook = errors.New("cannot get room")
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID, roomID uint) (*models.Booking, error)
	RelocateBooking(ctx context.Context, userID, bookingID, newRoomID uint) (*models.Booking, error)
	GetBooking(ctx context.Context, userID uint) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo    repository.BookingRepository
	roomRepo       repository.RoomRepository
	enrollmentRepo repository.EnrollmentRepository
	ticketRepo     repository.TicketRepository
	publisher      *rabbitmq.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	enrollmentRepo repository.EnrollmentRepository,
	ticketRepo repository.TicketRepository,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		enrollmentRepo: enrollmentRepo,
		ticketRepo:     ticketRepo,
		publisher:      publisher,
	}
}

// BookingEvent is published to RabbitMQ after a booking is created or
// relocated, so downstream services (billing, housekeeping) can react.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	BookingID  uint      `json:"booking_id"`
	UserID     uint      `json:"user_id"`
	RoomID     uint      `json:"room_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, roomID uint) (*models.Booking, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}

	booking := &models.Booking{UserID: userID, RoomID: roomID}

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.checkCapacity(ctx, tx, roomID); err != nil {
			return err
		}
		return s.bookingRepo.Create(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("booking.created", booking)
	return booking, nil
}

func (s *bookingService) RelocateBooking(ctx context.Context, userID, bookingID, newRoomID uint) (*models.Booking, error) {
	// A zero or unknown booking id means the caller holds nothing to
	// relocate; both surface as a refusal, not a missing record.
	if bookingID == 0 {
		return nil, fmt.Errorf("%w: no valid booking to relocate", ErrCannotBook)
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no valid booking to relocate", ErrCannotBook)
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrCannotBook)
	}

	err = s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// Capacity is checked against the destination only; the source
		// room is not decremented first, and a move within the same room
		// counts the booking against itself.
		if _, err := s.checkCapacity(ctx, tx, newRoomID); err != nil {
			return err
		}
		return s.bookingRepo.UpdateRoom(ctx, tx, bookingID, newRoomID)
	})
	if err != nil {
		return nil, err
	}

	booking.RoomID = newRoomID
	s.publishEvent("booking.relocated", booking)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user has no booking", ErrNotFound)
		}
		return nil, err
	}
	return booking, nil
}

// checkEligibility decides whether the user's ticket permits a hotel room:
// the enrollment must exist, and its ticket must be paid, in-person, and
// hotel-inclusive. The four ticket disjuncts collapse into one refusal; the
// caller only needs admit or reject here.
func (s *bookingService) checkEligibility(ctx context.Context, userID uint) error {
	enrollment, err := s.enrollmentRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user has no enrollment", ErrNotFound)
		}
		return err
	}

	ticket, err := s.ticketRepo.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: enrollment has no ticket", ErrCannotBook)
		}
		return err
	}

	if ticket.Status == models.TicketReserved ||
		ticket.TicketType == nil ||
		ticket.TicketType.IsRemote ||
		!ticket.TicketType.IncludesHotel {
		return fmt.Errorf("%w: ticket does not include a hotel stay", ErrCannotBook)
	}

	return nil
}

// checkCapacity locks the room row and re-counts occupancy under the lock,
// so concurrent admissions against the same room serialize and cannot
// overshoot capacity.
func (s *bookingService) checkCapacity(ctx context.Context, tx *gorm.DB, roomID uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room does not exist", ErrNotFound)
		}
		return nil, err
	}

	occupied, err := s.bookingRepo.CountByRoom(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	if occupied >= int64(room.Capacity) {
		return nil, fmt.Errorf("%w: room is at capacity", ErrCannotBook)
	}

	return room, nil
}

// publishEvent is best effort: a broker outage must not fail a committed
// booking.
func (s *bookingService) publishEvent(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(routingKey, BookingEvent{
		EventID:    uuid.NewString(),
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		RoomID:     booking.RoomID,
		OccurredAt: time.Now().UTC(),
	})
}
