package caseflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/telaro/caseflow/engine"
	"github.com/telaro/caseflow/model"
	"github.com/telaro/caseflow/service/gateway"
	gmcp "github.com/telaro/caseflow/service/gateway/mcp"
	"github.com/telaro/caseflow/service/gateway/memory"
	"github.com/telaro/caseflow/service/telemetry"
	"github.com/telaro/caseflow/tracing"
)

const (
	serviceName    = "caseflow"
	serviceVersion = "1.0.0"
)

// Service is the high-level façade: it wires configuration, gateway, metrics
// and tracing together and exposes workflow runs.
type Service struct {
	config    *Config
	configURL string
	mock      bool
	logger    *slog.Logger
	gateway   gateway.Gateway
	metrics   *telemetry.GatewayMetrics
	engine    *engine.Engine
	fs        afs.Service
}

// New builds a Service from the supplied options. A missing or invalid
// provider endpoint is fatal here - no run can start from a bad
// configuration.
func New(options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		logger: slog.Default(),
		fs:     afs.New(),
	}
	for _, option := range options {
		option(s)
	}
	if s.configURL != "" {
		config, err := loadConfig(context.Background(), s.fs, s.configURL)
		if err != nil {
			return nil, err
		}
		s.config = config
	}
	if s.mock {
		s.config.Providers.Mock = true
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(serviceName, serviceVersion, s.config.Tracing.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
	if err := s.ensureGateway(); err != nil {
		return nil, err
	}
	anEngine, err := engine.New(s.gateway, engine.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.engine = anEngine
	return s, nil
}

func (s *Service) ensureGateway() error {
	if s.gateway == nil {
		if s.config.Providers.Mock {
			s.gateway = memory.New()
		} else {
			common, err := gmcp.New(gateway.ProviderCommon, s.config.Providers.Common.URL)
			if err != nil {
				return err
			}
			atlas, err := gmcp.New(gateway.ProviderAtlas, s.config.Providers.Atlas.URL)
			if err != nil {
				return err
			}
			s.gateway = gateway.NewDispatcher(common, atlas)
		}
	}
	if s.metrics != nil {
		s.gateway = s.metrics.Instrument(s.gateway)
	}
	return nil
}

// Run executes one workflow run and returns the completed case record.
func (s *Service) Run(ctx context.Context, input model.Input) (*model.CaseRecord, error) {
	return s.engine.Run(ctx, input)
}

// Engine exposes the underlying engine for embedders.
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// loadConfig downloads and parses a YAML configuration from the given URL
// (file, embed or any scheme the afs service supports).
func loadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, &ConfigurationError{Field: "config", Reason: fmt.Sprintf("failed to load %v: %v", URL, err)}
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, &ConfigurationError{Field: "config", Reason: fmt.Sprintf("failed to parse %v: %v", URL, err)}
	}
	return config, nil
}
