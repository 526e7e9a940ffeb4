package review

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrNotFound         = errors.New("not_found")
	ErrReviewNotAllowed = errors.New("review_not_allowed")
)
