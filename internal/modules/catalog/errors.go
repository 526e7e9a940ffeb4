package catalog

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("service not found")
	ErrForbidden     = errors.New("forbidden")
	ErrSlugExhausted = errors.New("slug allocation exhausted")
)
