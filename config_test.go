package caseflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "http://localhost:8001", config.Providers.Common.URL)
	assert.Equal(t, "http://localhost:8002", config.Providers.Atlas.URL)
	assert.False(t, config.Providers.Mock)
	assert.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		config  *Config
		invalid string
	}{
		{
			name:    "nil config",
			config:  nil,
			invalid: "config",
		},
		{
			name:    "missing common endpoint",
			config:  &Config{Providers: ProvidersConfig{Atlas: EndpointConfig{URL: "http://localhost:8002"}}},
			invalid: "providers.common.url",
		},
		{
			name: "missing atlas endpoint",
			config: &Config{Providers: ProvidersConfig{
				Common: EndpointConfig{URL: "http://localhost:8001"},
			}},
			invalid: "providers.atlas.url",
		},
		{
			name: "relative endpoint",
			config: &Config{Providers: ProvidersConfig{
				Common: EndpointConfig{URL: "localhost:8001"},
				Atlas:  EndpointConfig{URL: "http://localhost:8002"},
			}},
			invalid: "providers.common.url",
		},
		{
			name:   "mock needs no endpoints",
			config: &Config{Providers: ProvidersConfig{Mock: true}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.invalid == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var configErr *ConfigurationError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tc.invalid, configErr.Field)
		})
	}
}
