package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Review is embedded in its Service row. It has no identity of its own:
// the pair (service, reviewer email) addresses it, and it is destroyed
// together with the parent Service.
type Review struct {
	ReviewerEmail string    `json:"reviewer_email"`
	Rating        int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReviewList is stored as a single JSON column so the review set and the
// derived rating average are always written in the same row update.
type ReviewList []Review

func (l ReviewList) Value() (driver.Value, error) {
	if l == nil {
		l = ReviewList{}
	}
	return json.Marshal(l)
}

func (l *ReviewList) Scan(src any) error {
	if src == nil {
		*l = ReviewList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported review list source")
	}
}

type Service struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;size:80"`
	Category      string     `json:"category" gorm:"index"`
	Description   string     `json:"description" gorm:"type:text"`
	Price         float64    `json:"price"`
	ImageURL      string     `json:"image_url,omitempty"`
	ProviderName  string     `json:"provider_name"`
	ProviderEmail string     `json:"provider_email" gorm:"index;not null"`
	RatingAvg     float64    `json:"rating_avg"`
	Views         int64      `json:"views"`
	Reviews       ReviewList `json:"reviews" gorm:"type:jsonb"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Service) TableName() string { return "services" }
