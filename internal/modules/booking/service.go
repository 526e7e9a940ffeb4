package booking

import (
	"context"
	"errors"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	services ServiceGate
}

func NewService(bookings BookingRepository, services ServiceGate) *Service {
	return &Service{bookings: bookings, services: services}
}

// CreateBooking checks its preconditions in a fixed order: the service
// must exist, the customer must not be its provider, and the request must
// be complete. The compound unique index on (customer, service, date) is
// the authority for duplicates: a rejected insert surfaces as
// ErrAlreadyBooked, never as a generic failure.
func (s *Service) CreateBooking(ctx context.Context, actingEmail string, serviceID int64, date time.Time, price float64) (*domain.Booking, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	customer := domain.NormalizeEmail(actingEmail)
	if customer == svc.ProviderEmail {
		return nil, ErrForbidden
	}

	if customer == "" || date.IsZero() || price < 0 {
		return nil, ErrValidation
	}

	day := normalizeDate(date)

	// Cheap pre-check to skip the conflict round-trip; racy by design,
	// the unique index below settles concurrent attempts.
	taken, err := s.bookings.Exists(ctx, customer, serviceID, day)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyBooked
	}

	b := &domain.Booking{
		ServiceID:     serviceID,
		CustomerEmail: customer,
		Date:          day,
		Price:         price,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBooking(ctx context.Context, actingEmail string, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if b.CustomerEmail != domain.NormalizeEmail(actingEmail) {
		return ErrForbidden
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListBookings returns the customer's bookings joined with a projection
// of each service as of read time. The projection is denormalization for
// display, not stored state: it may show a service's current price even
// for an old booking.
func (s *Service) ListBookings(ctx context.Context, actingEmail string) ([]domain.BookingWithService, error) {
	return s.bookings.GetByCustomer(ctx, domain.NormalizeEmail(actingEmail))
}

func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
