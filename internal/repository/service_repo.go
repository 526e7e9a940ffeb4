package repository

import (
	"context"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// ServiceFilter задаёт параметры поиска по каталогу.
type ServiceFilter struct {
	Category string
	Query    string
	MinPrice float64
	MaxPrice float64
	Limit    int
	Offset   int
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Service{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SlugExists probes slug occupancy. excludeID lets a rename treat the
// record's own slug as free. The unique index, not this probe, is the
// final authority under concurrent writers.
func (r *ServiceRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.Service{}).Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementViews bumps the counter in a single statement so concurrent
// reads never lose an increment.
func (r *ServiceRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	tx := r.db.WithContext(ctx).
		Raw("UPDATE services SET views = views + 1 WHERE id = ? RETURNING views", id).
		Scan(&views)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return views, nil
}

// UpdateReviews runs mutate against the service row under a row lock and
// persists the review set together with the recomputed aggregate in one
// write, so rating_avg can never drift from the reviews it summarizes.
func (r *ServiceRepository) UpdateReviews(ctx context.Context, id int64, mutate func(*domain.Service) error) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error; err != nil {
			return err
		}
		if err := mutate(&s); err != nil {
			return err
		}
		return tx.Model(&domain.Service{ID: s.ID}).
			Select("reviews", "rating_avg", "updated_at").
			Updates(domain.Service{Reviews: s.Reviews, RatingAvg: s.RatingAvg, UpdatedAt: time.Now().UTC()}).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context, f ServiceFilter) ([]domain.Service, int64, error) {
	var services []domain.Service
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Service{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Query != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Query+"%")
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	if err := q.Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *ServiceRepository) GetIDsByProvider(ctx context.Context, providerEmail string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Service{}).
		Where("provider_email = ?", providerEmail).
		Pluck("id", &ids).Error
	return ids, err
}
