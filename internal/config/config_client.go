package config

import (
	"fmt"
	"time"
)

// ClientConfig is the configuration view used by cmd/client.
type ClientConfig struct {
	// HTTPAddress is the base URL of the API server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// LogLevel is the minimal level of entries written to the client log file.
	LogLevel string
}

// GetClientConfig builds and validates the client configuration.
//
// Command-line flags are left to the client's subcommands, so only the
// environment, the JSON file and the defaults are merged here.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		LogLevel:       cfg.App.LogLevel,
	}

	return clientCfg, clientCfg.validate()
}
