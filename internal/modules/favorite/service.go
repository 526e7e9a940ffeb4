package favorite

import (
	"context"
	"errors"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Add(ctx context.Context, f *domain.Favorite) error
	Get(ctx context.Context, userEmail string, serviceID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userEmail string, serviceID int64) error
	GetByUser(ctx context.Context, userEmail string) ([]domain.FavoriteWithService, error)
}

type ServiceGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type Service struct {
	favorites FavoriteRepository
	services  ServiceGate
}

func NewService(favorites FavoriteRepository, services ServiceGate) *Service {
	return &Service{favorites: favorites, services: services}
}

// Add is idempotent: when the unique index reports the pair already
// exists, the existing row is returned as a success, not a conflict.
func (s *Service) Add(ctx context.Context, actingEmail string, serviceID int64) (*domain.Favorite, error) {
	if serviceID <= 0 {
		return nil, ErrValidation
	}

	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	f := &domain.Favorite{
		UserEmail: domain.NormalizeEmail(actingEmail),
		ServiceID: serviceID,
	}

	if err := s.favorites.Add(ctx, f); err != nil {
		if repository.IsUniqueViolation(err) {
			return s.favorites.Get(ctx, f.UserEmail, serviceID)
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) Remove(ctx context.Context, actingEmail string, serviceID int64) error {
	err := s.favorites.Remove(ctx, domain.NormalizeEmail(actingEmail), serviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) List(ctx context.Context, actingEmail string) ([]domain.FavoriteWithService, error) {
	return s.favorites.GetByUser(ctx, domain.NormalizeEmail(actingEmail))
}
