package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var errDuplicateBooking = errors.New(`ERROR: duplicate key value violates unique constraint "idx_customer_service_date" (SQLSTATE 23505)`)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil && b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) Exists(ctx context.Context, customerEmail string, serviceID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, customerEmail, serviceID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) GetByCustomer(ctx context.Context, customerEmail string) ([]domain.BookingWithService, error) {
	args := m.Called(ctx, customerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingWithService), args.Error(1)
}

type MockServiceGate struct {
	mock.Mock
}

func (m *MockServiceGate) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

var deepCleaning = &domain.Service{
	ID:            5,
	Name:          "Deep Cleaning",
	Price:         3000,
	ProviderEmail: "aliya@cleanco.kz",
}

func TestCreateBooking_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	date := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	services.On("GetByID", mock.Anything, int64(5)).Return(deepCleaning, nil)
	bookings.On("Exists", mock.Anything, "daniyar@example.com", int64(5), day).Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := NewService(bookings, services).CreateBooking(context.Background(), "Daniyar@Example.com", 5, date, 3000)

	assert.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, "daniyar@example.com", b.CustomerEmail)
	assert.Equal(t, day, b.Date, "date must be normalized to midnight UTC")
	bookings.AssertExpectations(t)
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	services.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(bookings, services).CreateBooking(context.Background(), "daniyar@example.com", 404, time.Now(), 100)

	assert.ErrorIs(t, err, ErrNotFound)
	bookings.AssertNotCalled(t, "Create")
}

func TestCreateBooking_SelfBookingForbidden(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	services.On("GetByID", mock.Anything, int64(5)).Return(deepCleaning, nil)

	// case-insensitive match against the provider email, regardless of
	// other field validity
	_, err := NewService(bookings, services).CreateBooking(context.Background(), "ALIYA@CleanCo.KZ", 5, time.Time{}, -1)

	assert.ErrorIs(t, err, ErrForbidden)
	bookings.AssertNotCalled(t, "Create")
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	services.On("GetByID", mock.Anything, int64(5)).Return(deepCleaning, nil)

	_, err := NewService(bookings, services).CreateBooking(context.Background(), "daniyar@example.com", 5, time.Time{}, 3000)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewService(bookings, services).CreateBooking(context.Background(), "daniyar@example.com", 5, time.Now(), -5)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_DuplicateTripleConflicts(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	services.On("GetByID", mock.Anything, int64(5)).Return(deepCleaning, nil)
	// the probe misses the concurrent writer; the unique index answers
	bookings.On("Exists", mock.Anything, "daniyar@example.com", int64(5), date).Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(errDuplicateBooking)

	_, err := NewService(bookings, services).CreateBooking(context.Background(), "daniyar@example.com", 5, date, 3000)

	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestCreateBooking_ProbeShortCircuitsKnownDuplicate(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	services.On("GetByID", mock.Anything, int64(5)).Return(deepCleaning, nil)
	bookings.On("Exists", mock.Anything, "daniyar@example.com", int64(5), date).Return(true, nil)

	_, err := NewService(bookings, services).CreateBooking(context.Background(), "daniyar@example.com", 5, date, 3000)

	assert.ErrorIs(t, err, ErrAlreadyBooked)
	bookings.AssertNotCalled(t, "Create")
}

func TestCreateBooking_DifferentDateSucceeds(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	other := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	services.On("GetByID", mock.Anything, int64(5)).Return(deepCleaning, nil)
	bookings.On("Exists", mock.Anything, "daniyar@example.com", int64(5), other).Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := NewService(bookings, services).CreateBooking(context.Background(), "daniyar@example.com", 5, other, 3000)

	assert.NoError(t, err)
	assert.Equal(t, other, b.Date)
}

func TestDeleteBooking_OwnerOnly(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	owned := &domain.Booking{ID: 1, CustomerEmail: "daniyar@example.com"}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(owned, nil)
	bookings.On("Delete", mock.Anything, int64(1)).Return(nil)

	svc := NewService(bookings, services)

	err := svc.DeleteBooking(context.Background(), "someoneelse@example.com", 1)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteBooking(context.Background(), "Daniyar@Example.com", 1)
	assert.NoError(t, err)
}

func TestDeleteBooking_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	bookings.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	err := NewService(bookings, services).DeleteBooking(context.Background(), "daniyar@example.com", 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBookings_ReturnsServiceProjection(t *testing.T) {
	bookings := new(MockBookingRepository)
	services := new(MockServiceGate)

	rows := []domain.BookingWithService{
		{
			Booking:      domain.Booking{ID: 1, ServiceID: 5, CustomerEmail: "daniyar@example.com", Price: 3000},
			ServiceName:  "Deep Cleaning",
			ServicePrice: 3500, // current price, not price at booking time
			ProviderName: "Aliya Cleaning Co",
		},
	}
	bookings.On("GetByCustomer", mock.Anything, "daniyar@example.com").Return(rows, nil)

	got, err := NewService(bookings, services).ListBookings(context.Background(), "Daniyar@Example.com")

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 3000.0, got[0].Price)
	assert.Equal(t, 3500.0, got[0].ServicePrice)
}
