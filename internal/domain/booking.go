package domain

import "time"

// Booking is day-granular: Date is normalized to midnight UTC before it
// reaches the repository. The compound unique index is the authority for
// the one-booking-per-customer-per-service-per-day rule.
type Booking struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	ServiceID     int64     `json:"service_id" gorm:"not null;uniqueIndex:idx_customer_service_date"`
	CustomerEmail string    `json:"customer_email" gorm:"not null;size:120;uniqueIndex:idx_customer_service_date"`
	Date          time.Time `json:"date" gorm:"not null;uniqueIndex:idx_customer_service_date"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Booking) TableName() string { return "bookings" }

// BookingWithService is the read-side projection returned by booking
// listings: the service fields reflect current state, not state at the
// time the booking was made.
type BookingWithService struct {
	Booking
	ServiceName   string  `json:"service_name"`
	ServiceImage  string  `json:"service_image,omitempty"`
	ServicePrice  float64 `json:"service_price"`
	ProviderName  string  `json:"provider_name"`
	ProviderEmail string  `json:"provider_email"`
}
