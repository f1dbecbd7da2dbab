package repository

import (
	"context"

	"github.com/drivenevents/hotel-booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	UpdateRoom(ctx context.Context, tx *gorm.DB, bookingID, roomID uint) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Booking, error)
	CountByRoom(ctx context.Context, tx *gorm.DB, roomID uint) (int64, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Transaction wraps fn in a database transaction. The check-then-act
// sequences in the service (lock room, count occupancy, insert or relocate)
// must run inside it so the room row lock is held across both steps.
func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) UpdateRoom(ctx context.Context, tx *gorm.DB, bookingID, roomID uint) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("room_id", roomID).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByUserID returns the user's booking with its room preloaded. A user is
// expected to hold at most one booking; the earliest wins if that convention
// was ever violated.
func (r *bookingRepository) FindByUserID(ctx context.Context, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CountByRoom(ctx context.Context, tx *gorm.DB, roomID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
