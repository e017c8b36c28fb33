package scheduler

import (
	"log"

	"github.com/viant/simos/model"
	"github.com/viant/simos/service/event"
)

// Option configures the scheduler
type Option func(s *Service)

// WithLogger sets the logger used for transitions and rejections
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListener subscribes a handler to transition events
func WithListener(handler event.Handler[model.Process]) Option {
	return func(s *Service) {
		s.events.Subscribe(handler)
	}
}
