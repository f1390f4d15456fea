package feed

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInterval = errors.New("interval must be positive")
	ErrNilTickFunc     = errors.New("tick func cannot be nil")
)

func NewRangeError(d, min, max time.Duration) error {
	return fmt.Errorf("interval %v outside [%v, %v]", d, min, max)
}

func NewStepError(d, step time.Duration) error {
	return fmt.Errorf("interval %v is not a multiple of %v", d, step)
}
