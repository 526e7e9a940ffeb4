package catalog

import (
	"context"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

// ServiceRepository defines the store operations the catalog needs. The
// implementation must enforce slug uniqueness with a unique index; the
// SlugExists probe is only an optimization.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, int64, error)
}
