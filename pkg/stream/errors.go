package stream

import "errors"

var (
	ErrHubStopped = errors.New("hub stopped")
	ErrNilFrame   = errors.New("frame cannot be nil")
)
