package services

import "errors"

// Dataset service errors
var (
	ErrUnknownDomain   = errors.New("unknown domain")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrInvalidRange    = errors.New("start is after end")
	ErrInvalidDate     = errors.New("invalid date")
	ErrDataUnavailable = errors.New("data unavailable")
)
