package domain

import "time"

// Favorite связывает пользователя с сохранённой услугой.
// Пара (user_email, service_id) уникальна, повторное добавление идемпотентно.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserEmail string    `json:"user_email" gorm:"not null;size:120;uniqueIndex:idx_user_service"`
	ServiceID int64     `json:"service_id" gorm:"not null;uniqueIndex:idx_user_service"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Favorite) TableName() string { return "favorites" }

// FavoriteWithService используется для ответа API с данными услуги.
type FavoriteWithService struct {
	Favorite
	ServiceName  string  `json:"service_name"`
	ServiceSlug  string  `json:"service_slug"`
	ServiceImage string  `json:"service_image,omitempty"`
	ServicePrice float64 `json:"service_price"`
	RatingAvg    float64 `json:"rating_avg"`
}
