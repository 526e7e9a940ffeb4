package analytics

import (
	"context"
	"fmt"
	"sort"

	"servicehub/internal/domain"
)

type ServiceSource interface {
	GetIDsByProvider(ctx context.Context, providerEmail string) ([]int64, error)
}

type BookingSource interface {
	GetByServiceIDs(ctx context.Context, serviceIDs []int64) ([]domain.Booking, error)
}

// MonthlyStat is one bucket of the provider rollup.
type MonthlyStat struct {
	Month        string  `json:"month"` // YYYY-MM
	BookingCount int64   `json:"booking_count"`
	Revenue      float64 `json:"revenue"`
}

type Service struct {
	services ServiceSource
	bookings BookingSource
}

func NewService(services ServiceSource, bookings BookingSource) *Service {
	return &Service{services: services, bookings: bookings}
}

// MonthlyRollup aggregates the provider's bookings into per-month count
// and revenue buckets, ascending. Pure read-side derivation: no stored
// state, recomputed from the ledger's current contents on every call.
func (s *Service) MonthlyRollup(ctx context.Context, providerEmail string) ([]MonthlyStat, error) {
	ids, err := s.services.GetIDsByProvider(ctx, domain.NormalizeEmail(providerEmail))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []MonthlyStat{}, nil
	}

	bookings, err := s.bookings.GetByServiceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*MonthlyStat)
	for _, b := range bookings {
		key := fmt.Sprintf("%04d-%02d", b.Date.Year(), int(b.Date.Month()))
		st, ok := buckets[key]
		if !ok {
			st = &MonthlyStat{Month: key}
			buckets[key] = st
		}
		st.BookingCount++
		st.Revenue += b.Price
	}

	out := make([]MonthlyStat, 0, len(buckets))
	for _, st := range buckets {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
