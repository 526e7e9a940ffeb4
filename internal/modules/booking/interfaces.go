package booking

import (
	"context"
	"time"

	"servicehub/internal/domain"
)

// BookingRepository defines the ledger's store operations. The
// implementation must hold a compound unique index over
// (customer_email, service_id, date); Exists is an optimization probe
// only and never the correctness guarantee.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, customerEmail string, serviceID int64, date time.Time) (bool, error)
	GetByCustomer(ctx context.Context, customerEmail string) ([]domain.BookingWithService, error)
}

// ServiceGate is the catalog lookup the ledger needs for its
// preconditions.
type ServiceGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}
