package booking

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("booking not found")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyBooked = errors.New("already booked")
)
