// Package config provides configuration for the triptools commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingGeocoderEndpoint  = errors.New("geocoder.endpoint is required")
	ErrMissingGeocoderUserAgent = errors.New("geocoder.user_agent is required")
	ErrInvalidGeocoderDelay     = errors.New("geocoder.min_delay_ms must be non-negative")
	ErrInvalidMaxAttempts       = errors.New("geocoder.max_attempts must be at least 1")
	ErrInvalidErrorWait         = errors.New("geocoder.error_wait_ms must be non-negative")
	ErrInvalidGeocoderTimeout   = errors.New("geocoder.timeout_sec must be at least 1")
	ErrMissingOSRMEndpoint      = errors.New("routing.osrm_endpoint is required")
	ErrMissingORSEndpoint       = errors.New("routing.ors_endpoint is required")
	ErrInvalidLegDelay          = errors.New("routing.leg_delay_ms must be non-negative")
	ErrInvalidRoutingTimeout    = errors.New("routing.timeout_sec must be at least 1")
	ErrInvalidZoom              = errors.New("map.zoom must be between 1 and 19")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config holds settings for both commands. Every field has a usable
// default; a config file only overrides what it names.
type Config struct {
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Routing  RoutingConfig  `yaml:"routing"`
	Map      MapConfig      `yaml:"map"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GeocoderConfig controls the geocoding client and its politeness policy.
type GeocoderConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UserAgent   string `yaml:"user_agent"`
	MinDelayMs  int    `yaml:"min_delay_ms"`
	MaxAttempts int    `yaml:"max_attempts"`
	ErrorWaitMs int    `yaml:"error_wait_ms"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

// RoutingConfig controls the driving-route providers.
type RoutingConfig struct {
	OSRMEndpoint string `yaml:"osrm_endpoint"`
	ORSEndpoint  string `yaml:"ors_endpoint"`
	LegDelayMs   int    `yaml:"leg_delay_ms"`
	TimeoutSec   int    `yaml:"timeout_sec"`
}

// MapConfig controls map rendering.
type MapConfig struct {
	Zoom int `yaml:"zoom"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Geocoder: GeocoderConfig{
			Endpoint:    "https://nominatim.openstreetmap.org",
			UserAgent:   "triptools/1.0 (trip map builder)",
			MinDelayMs:  1500,
			MaxAttempts: 3,
			ErrorWaitMs: 2000,
			TimeoutSec:  10,
		},
		Routing: RoutingConfig{
			OSRMEndpoint: "https://router.project-osrm.org",
			ORSEndpoint:  "https://api.openrouteservice.org",
			LegDelayMs:   500,
			TimeoutSec:   10,
		},
		Map: MapConfig{
			Zoom: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Geocoder.Endpoint == "" {
		return ErrMissingGeocoderEndpoint
	}

	if c.Geocoder.UserAgent == "" {
		return ErrMissingGeocoderUserAgent
	}

	if c.Geocoder.MinDelayMs < 0 {
		return ErrInvalidGeocoderDelay
	}

	if c.Geocoder.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Geocoder.ErrorWaitMs < 0 {
		return ErrInvalidErrorWait
	}

	if c.Geocoder.TimeoutSec < 1 {
		return ErrInvalidGeocoderTimeout
	}

	if c.Routing.OSRMEndpoint == "" {
		return ErrMissingOSRMEndpoint
	}

	if c.Routing.ORSEndpoint == "" {
		return ErrMissingORSEndpoint
	}

	if c.Routing.LegDelayMs < 0 {
		return ErrInvalidLegDelay
	}

	if c.Routing.TimeoutSec < 1 {
		return ErrInvalidRoutingTimeout
	}

	if c.Map.Zoom < 1 || c.Map.Zoom > 19 {
		return ErrInvalidZoom
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// MinDelay returns the minimum interval between geocoding requests.
func (g *GeocoderConfig) MinDelay() time.Duration {
	return time.Duration(g.MinDelayMs) * time.Millisecond
}

// ErrorWait returns the pause after a failed geocoding attempt.
func (g *GeocoderConfig) ErrorWait() time.Duration {
	return time.Duration(g.ErrorWaitMs) * time.Millisecond
}

// Timeout returns the per-request geocoding timeout.
func (g *GeocoderConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSec) * time.Second
}

// LegDelay returns the pause after each car-leg route resolution.
func (r *RoutingConfig) LegDelay() time.Duration {
	return time.Duration(r.LegDelayMs) * time.Millisecond
}

// Timeout returns the per-request routing timeout.
func (r *RoutingConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSec) * time.Second
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Geocoder: %s, OSRM: %s, Zoom: %d}",
		c.Geocoder.Endpoint,
		c.Routing.OSRMEndpoint,
		c.Map.Zoom,
	)
}
