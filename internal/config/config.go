package config

import "time"

// Config holds the main configuration for the service. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	Server   ServerConfig   `json:"server"   yaml:"server"`
	Upstream UpstreamConfig `json:"upstream" yaml:"upstream"`
	Auth     AuthConfig     `json:"auth"     yaml:"auth"`
}

// ServerConfig holds configuration for the inbound HTTP server.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// UpstreamConfig holds configuration for the upstream synthesis provider.
type UpstreamConfig struct {
	APIKey                string `json:"api_key,omitempty"        yaml:"api_key,omitempty"`
	BaseURL               string `json:"base_url"                 yaml:"base_url"`
	VoiceID               string `json:"voice_id,omitempty"       yaml:"voice_id,omitempty"`
	ModelID               string `json:"model_id"                 yaml:"model_id"`
	MaxConns              int    `json:"max_conns"                yaml:"max_conns"`
	KeepAliveSeconds      int    `json:"keepalive_seconds"        yaml:"keepalive_seconds"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"  yaml:"request_timeout_seconds"`
}

// AuthConfig holds configuration for the shared-secret gate.
type AuthConfig struct {
	SharedToken string `json:"shared_token,omitempty" yaml:"shared_token,omitempty"`
}

// KeepAlive returns the idle keep-alive timeout of pooled upstream connections.
func (u UpstreamConfig) KeepAlive() time.Duration {
	return time.Duration(u.KeepAliveSeconds) * time.Second
}

// RequestTimeout returns the overall timeout of a single outbound synthesis call.
func (u UpstreamConfig) RequestTimeout() time.Duration {
	return time.Duration(u.RequestTimeoutSeconds) * time.Second
}

// Default returns the built-in configuration, before file and environment
// overrides are applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Upstream: UpstreamConfig{
			BaseURL:               "https://api.elevenlabs.io",
			ModelID:               "eleven_flash_v2_5",
			MaxConns:              64,
			KeepAliveSeconds:      30,
			RequestTimeoutSeconds: 20,
		},
	}
}
