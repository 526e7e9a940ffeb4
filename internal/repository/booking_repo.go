package repository

import (
	"context"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists is an optimization probe only: the compound unique index decides
// the race between two concurrent inserts for the same triple.
func (r *BookingRepository) Exists(ctx context.Context, customerEmail string, serviceID int64, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("customer_email = ? AND service_id = ? AND date = ?", customerEmail, serviceID, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByCustomer joins each booking with a projection of its service as of
// read time.
func (r *BookingRepository) GetByCustomer(ctx context.Context, customerEmail string) ([]domain.BookingWithService, error) {
	var rows []domain.BookingWithService
	err := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`b.id, b.service_id, b.customer_email, b.date, b.price, b.created_at,
			s.name AS service_name, s.image_url AS service_image, s.price AS service_price,
			s.provider_name, s.provider_email`).
		Joins("JOIN services s ON s.id = b.service_id").
		Where("b.customer_email = ?", customerEmail).
		Order("b.date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *BookingRepository) GetByServiceIDs(ctx context.Context, serviceIDs []int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("service_id IN ?", serviceIDs).
		Order("date ASC").
		Find(&bookings).Error
	return bookings, err
}

// HasBookingForService backs the review eligibility gate.
func (r *BookingRepository) HasBookingForService(ctx context.Context, customerEmail string, serviceID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("customer_email = ? AND service_id = ?", customerEmail, serviceID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
