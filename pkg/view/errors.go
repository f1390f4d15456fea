package view

import (
	"errors"
	"fmt"
)

var (
	ErrDisposed     = errors.New("view disposed")
	ErrNilSink      = errors.New("sink cannot be nil")
	ErrViewNotFound = errors.New("view not found")
)

func NewDuplicateError(name string) error {
	return fmt.Errorf("view %q already registered", name)
}
