package chart

import (
	"errors"
	"fmt"
)

var (
	ErrNilConfig     = errors.New("chart config cannot be nil")
	ErrNoData        = errors.New("chart has no data to render")
	ErrSinkDestroyed = errors.New("sink already destroyed")
)

func NewUnsupportedKindError(k Kind) error {
	return fmt.Errorf("chart kind %q cannot be rendered to png", k)
}

func NewColorError(s string, err error) error {
	return fmt.Errorf("invalid color %q: %w", s, err)
}
