package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/envvar"
)

//go:embed config.schema.json
var schemaJSON string

// Load builds the effective configuration: built-in defaults, then the YAML
// file at path (validated against the embedded schema), then environment
// variable overrides. An empty path skips the file layer entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges the YAML file at path into cfg after schema validation.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: invalid YAML: %w", err)
	}

	schema, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("config: config validation failed: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	return nil
}

// applyEnv overrides cfg with values from the process environment.
func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, envvar.Addr)
	setString(&cfg.Upstream.APIKey, envvar.APIKey)
	setString(&cfg.Upstream.BaseURL, envvar.UpstreamURL)
	setString(&cfg.Upstream.VoiceID, envvar.VoiceID)
	setInt(&cfg.Upstream.MaxConns, envvar.MaxConns)
	setInt(&cfg.Upstream.KeepAliveSeconds, envvar.KeepAliveSeconds)
	setInt(&cfg.Upstream.RequestTimeoutSeconds, envvar.RequestTimeoutSeconds)
	setString(&cfg.Auth.SharedToken, envvar.SharedToken)
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server addr must not be empty")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("config: upstream base URL must not be empty")
	}
	if c.Upstream.MaxConns < 1 {
		return fmt.Errorf("config: upstream max_conns must be at least 1, got %d", c.Upstream.MaxConns)
	}
	if c.Upstream.KeepAliveSeconds < 1 {
		return fmt.Errorf("config: upstream keepalive_seconds must be at least 1, got %d", c.Upstream.KeepAliveSeconds)
	}
	if c.Upstream.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("config: upstream request_timeout_seconds must be at least 1, got %d", c.Upstream.RequestTimeoutSeconds)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
}
