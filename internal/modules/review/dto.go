package review

import "servicehub/internal/domain"

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty"`
}

type SubmitReviewResult struct {
	RatingAvg float64           `json:"rating_avg"`
	Reviews   domain.ReviewList `json:"reviews"`
}
