package usecase

import (
	"errors"
)

// Sentinel errors returned by usecases. The HTTP layer translates these to
// status codes in one place; raw repository/driver errors never cross it.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
