package caseflow

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"

	"github.com/telaro/caseflow/service/gateway"
	"github.com/telaro/caseflow/service/telemetry"
)

// Option customises the Service.
type Option func(s *Service)

// WithConfig sets the configuration directly.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithConfigURL loads the configuration from the given URL at construction
// time (file, embed or any scheme the afs service supports).
func WithConfigURL(URL string) Option {
	return func(s *Service) {
		s.configURL = URL
	}
}

// WithFs overrides the abstract file system used to load configuration.
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGateway injects a custom ability gateway, bypassing endpoint wiring.
func WithGateway(gw gateway.Gateway) Option {
	return func(s *Service) {
		s.gateway = gw
	}
}

// WithMockGateway selects the in-process mock ability backend, regardless of
// the configured endpoints.
func WithMockGateway() Option {
	return func(s *Service) {
		s.mock = true
	}
}

// WithMetrics registers gateway collectors with the supplied registerer and
// instruments every ability call.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(s *Service) {
		if registerer != nil {
			s.metrics = telemetry.NewGatewayMetrics(registerer)
		}
	}
}
