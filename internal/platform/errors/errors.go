package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoActiveUnit     = errors.New("no active content unit")
	ErrUnitNotClickable = errors.New("content unit is not clickable")
	ErrUnknownSession   = errors.New("unknown playback session")
)
