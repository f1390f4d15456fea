package chart

import "errors"

// Sink is the rendering collaborator. Update is called with the current
// config after every change; the sink must not retain cfg past the call.
// Nothing is sent to a sink after Destroy.
type Sink interface {
	Update(cfg *Config, mode UpdateMode) error
	Destroy() error
}

type multiSink []Sink

// Multi fans every call out to all sinks and joins their errors.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Update(cfg *Config, mode UpdateMode) error {
	var errs []error
	for _, s := range m {
		if err := s.Update(cfg, mode); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiSink) Destroy() error {
	var errs []error
	for _, s := range m {
		if err := s.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type discard struct{}

func (discard) Update(*Config, UpdateMode) error { return nil }
func (discard) Destroy() error                   { return nil }

var Discard Sink = discard{}
