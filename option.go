package simos

import (
	"log"

	"github.com/viant/simos/model"
	"github.com/viant/simos/service/event"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service
type Option func(s *Service)

// WithConfig replaces the whole configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithDisks sets the number of disks created upfront
func WithDisks(count int) Option {
	return func(s *Service) {
		s.config.Disks = count
	}
}

// WithMemory sets the RAM size and the OS footprint, in bytes
func WithMemory(ram, osSize uint64) Option {
	return func(s *Service) {
		s.config.RAM = Size(ram)
		s.config.OSSize = Size(osSize)
	}
}

// WithReclaim returns released memory to the free capacity
func WithReclaim(reclaim bool) Option {
	return func(s *Service) {
		s.config.Memory.ReclaimOnRelease = reclaim
	}
}

// WithLogger sets the logger; logging is discarded by default
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithListener subscribes a handler to process transition events
func WithListener(handler event.Handler[model.Process]) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, handler)
	}
}

// WithTracing enables the stdout span exporter. If outputFile is empty spans
// are written to stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.config.Tracing = TracingConfig{
			Enabled:        true,
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			OutputFile:     outputFile,
		}
	}
}

// WithTracingExporter installs a custom span exporter
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.exporter = exporter
		s.config.Tracing.Enabled = true
		s.config.Tracing.ServiceName = serviceName
		s.config.Tracing.ServiceVersion = serviceVersion
	}
}
