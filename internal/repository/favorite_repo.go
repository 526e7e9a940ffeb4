package repository

import (
	"context"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add вставляет пару (user, service). При нарушении уникального индекса
// ошибка уходит вызывающему как есть: сервисный слой трактует её как
// идемпотентный повтор, а не как конфликт.
func (r *FavoriteRepository) Add(ctx context.Context, f *domain.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FavoriteRepository) Get(ctx context.Context, userEmail string, serviceID int64) (*domain.Favorite, error) {
	var f domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND service_id = ?", userEmail, serviceID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userEmail string, serviceID int64) error {
	tx := r.db.WithContext(ctx).
		Where("user_email = ? AND service_id = ?", userEmail, serviceID).
		Delete(&domain.Favorite{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByUser возвращает избранное пользователя вместе с текущими данными услуг.
func (r *FavoriteRepository) GetByUser(ctx context.Context, userEmail string) ([]domain.FavoriteWithService, error) {
	var rows []domain.FavoriteWithService
	err := r.db.WithContext(ctx).
		Table("favorites f").
		Select(`f.id, f.user_email, f.service_id, f.created_at,
			s.name AS service_name, s.slug AS service_slug, s.image_url AS service_image,
			s.price AS service_price, s.rating_avg`).
		Joins("JOIN services s ON s.id = f.service_id").
		Where("f.user_email = ?", userEmail).
		Order("f.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
