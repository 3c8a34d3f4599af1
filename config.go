package caseflow

import (
	"fmt"
	"net/url"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML or JSON; the zero value is not runnable - use
// DefaultConfig for the demo defaults.
type Config struct {
	Providers ProvidersConfig `json:"providers" yaml:"providers"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
}

// ProvidersConfig selects the ability backend: either the two remote provider
// endpoints, or the in-process mock. The mock is an explicit configuration
// choice, never an error-path fallback.
type ProvidersConfig struct {
	Mock   bool           `json:"mock" yaml:"mock"`
	Common EndpointConfig `json:"common" yaml:"common"`
	Atlas  EndpointConfig `json:"atlas" yaml:"atlas"`
}

// EndpointConfig holds one provider's base address.
type EndpointConfig struct {
	URL string `json:"url" yaml:"url"`
}

// TracingConfig controls span export.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config pointing at the demo ability servers on
// localhost. Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			Common: EndpointConfig{URL: "http://localhost:8001"},
			Atlas:  EndpointConfig{URL: "http://localhost:8002"},
		},
	}
}

// ConfigurationError reports an invalid or missing setting. It is fatal at
// construction time: no run starts with a bad configuration.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate returns a *ConfigurationError describing the first invalid setting
// or nil.
func (c *Config) Validate() error {
	if c == nil {
		return &ConfigurationError{Field: "config", Reason: "is nil"}
	}
	if c.Providers.Mock {
		return nil
	}
	if err := validateEndpoint("providers.common.url", c.Providers.Common.URL); err != nil {
		return err
	}
	return validateEndpoint("providers.atlas.url", c.Providers.Atlas.URL)
}

func validateEndpoint(field, value string) error {
	if value == "" {
		return &ConfigurationError{Field: field, Reason: "endpoint is required"}
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return &ConfigurationError{Field: field, Reason: err.Error()}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return &ConfigurationError{Field: field, Reason: "endpoint must be an absolute URL"}
	}
	return nil
}
