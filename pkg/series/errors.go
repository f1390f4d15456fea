package series

import "errors"

var (
	ErrNegativeCapacity = errors.New("series capacity cannot be negative")
	ErrNilGenerator     = errors.New("generator cannot be nil")
)
