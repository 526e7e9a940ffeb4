package catalog

import (
	"context"
	"errors"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	services ServiceRepository
}

func NewService(services ServiceRepository) *Service {
	return &Service{services: services}
}

func (s *Service) CreateService(ctx context.Context, actingEmail, actingName string, req CreateServiceRequest) (*domain.Service, error) {
	if req.Name == "" || req.Category == "" || req.Price < 0 {
		return nil, ErrValidation
	}

	svc := &domain.Service{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		ProviderName:  actingName,
		ProviderEmail: domain.NormalizeEmail(actingEmail),
		Reviews:       domain.ReviewList{},
	}

	if err := s.allocate(ctx, req.Name, 0, func(slug string) error {
		svc.Slug = slug
		return s.services.Create(ctx, svc)
	}); err != nil {
		return nil, err
	}
	return svc, nil
}

// allocate runs the probe-then-write slug protocol: starting from the
// base candidate it probes for occupancy, appending -2, -3, ... on
// collision. The store's unique index stays the authority: when the write
// itself is rejected (a concurrent allocator won the race after our
// probe), allocation resumes with the next suffix instead of surfacing
// the raw violation.
func (s *Service) allocate(ctx context.Context, name string, excludeID int64, write func(slug string) error) error {
	base := Slugify(name)
	if base == "" {
		base = "service-" + uuid.NewString()[:8]
	}

	candidate := base
	attempt := 1
	for total := 0; total < maxSlugAttempts; total++ {
		taken, err := s.services.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return err
		}
		if taken {
			attempt++
			candidate = suffixed(base, attempt)
			continue
		}

		err = write(candidate)
		if err == nil {
			return nil
		}
		if repository.IsUniqueViolation(err) {
			attempt++
			candidate = suffixed(base, attempt)
			continue
		}
		return err
	}
	return ErrSlugExhausted
}

func (s *Service) UpdateService(ctx context.Context, actingEmail string, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if svc.ProviderEmail != domain.NormalizeEmail(actingEmail) {
		return nil, ErrForbidden
	}

	renamed := req.Name != "" && req.Name != svc.Name
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Category != "" {
		svc.Category = req.Category
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.ImageURL != "" {
		svc.ImageURL = req.ImageURL
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		svc.Price = *req.Price
	}

	if !renamed {
		if err := s.services.Update(ctx, svc); err != nil {
			return nil, err
		}
		return svc, nil
	}

	// Renaming re-derives the slug. The probe excludes the service's own
	// row: renaming to a slug it already holds is not a collision.
	if err := s.allocate(ctx, svc.Name, svc.ID, func(slug string) error {
		svc.Slug = slug
		return s.services.Update(ctx, svc)
	}); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetByID returns the service and bumps its view counter atomically in
// the store.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.countView(ctx, svc)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	svc, err := s.services.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.countView(ctx, svc)
}

func (s *Service) countView(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	views, err := s.services.IncrementViews(ctx, svc.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	svc.Views = views
	return svc, nil
}

func (s *Service) List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, int64, error) {
	return s.services.List(ctx, f)
}

func (s *Service) DeleteService(ctx context.Context, actingEmail string, id int64) error {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if svc.ProviderEmail != domain.NormalizeEmail(actingEmail) {
		return ErrForbidden
	}

	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
