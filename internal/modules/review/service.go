package review

import (
	"context"
	"errors"
	"math"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

// BookingGate answers the eligibility question: only customers who have
// booked a service may review it.
type BookingGate interface {
	HasBookingForService(ctx context.Context, customerEmail string, serviceID int64) (bool, error)
}

// ServiceStore is the slice of the catalog repository the aggregator
// uses. UpdateReviews must apply the mutation and persist the review set
// together with rating_avg as one atomic row write.
type ServiceStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	UpdateReviews(ctx context.Context, id int64, mutate func(*domain.Service) error) (*domain.Service, error)
}

type Service struct {
	services ServiceStore
	bookings BookingGate
}

func NewService(services ServiceStore, bookings BookingGate) *Service {
	return &Service{services: services, bookings: bookings}
}

// SubmitReview upserts the caller's review for a service and recomputes
// the rating average. A repeat submission overwrites the existing review
// in place (comment only when a new one is supplied) rather than
// appending, so one reviewer never counts twice.
func (s *Service) SubmitReview(ctx context.Context, actingEmail string, serviceID int64, req SubmitReviewRequest) (*SubmitReviewResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	reviewer := domain.NormalizeEmail(actingEmail)
	if reviewer == "" || serviceID <= 0 {
		return nil, ErrInvalidRequest
	}

	ok, err := s.bookings.HasBookingForService(ctx, reviewer, serviceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// distinguish a missing service from a present but unbooked one
		if _, err := s.services.GetByID(ctx, serviceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, ErrReviewNotAllowed
	}

	now := time.Now().UTC()
	svc, err := s.services.UpdateReviews(ctx, serviceID, func(svc *domain.Service) error {
		for i := range svc.Reviews {
			if svc.Reviews[i].ReviewerEmail == reviewer {
				svc.Reviews[i].Rating = req.Rating
				if req.Comment != "" {
					svc.Reviews[i].Comment = req.Comment
				}
				svc.Reviews[i].CreatedAt = now
				svc.RatingAvg = ratingAverage(svc.Reviews)
				return nil
			}
		}
		svc.Reviews = append(svc.Reviews, domain.Review{
			ReviewerEmail: reviewer,
			Rating:        req.Rating,
			Comment:       req.Comment,
			CreatedAt:     now,
		})
		svc.RatingAvg = ratingAverage(svc.Reviews)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &SubmitReviewResult{
		RatingAvg: svc.RatingAvg,
		Reviews:   svc.Reviews,
	}, nil
}

func (s *Service) ListReviews(ctx context.Context, serviceID int64) (domain.ReviewList, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc.Reviews, nil
}

// ratingAverage is recomputed from the full set on every mutation, never
// maintained incrementally, so the invariant holds even if a prior stored
// aggregate was wrong.
func ratingAverage(reviews domain.ReviewList) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*100) / 100
}
