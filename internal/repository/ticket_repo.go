package repository

import (
	"context"

	"github.com/drivenevents/hotel-booking-service/internal/models"
	"gorm.io/gorm"
)

type TicketRepository interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID uint) (*models.Ticket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// FindByEnrollmentID preloads the ticket type; eligibility needs its
// is_remote and includes_hotel flags.
func (r *ticketRepository) FindByEnrollmentID(ctx context.Context, enrollmentID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("enrollment_id = ?", enrollmentID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
