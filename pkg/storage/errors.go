package storage

import "errors"

var (
	ErrNilKey        = errors.New("series key cannot be nil")
	ErrNilFrame      = errors.New("frame cannot be nil")
	ErrFrameNotFound = errors.New("frame not found")
	ErrOutOfOrder    = errors.New("frame sequence out of order")
)
