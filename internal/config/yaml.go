// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	applog "spectra/internal/log"
)

var ErrInvalid = errors.New("invalid configuration")

// LoadConfig is Load followed by Validate.
func LoadConfig(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the YAML file at path. If path is empty it
// looks for config.yaml in the working directory and falls back to the
// built-in defaults. Environment overrides are applied last. The result is
// not validated, so callers layering more overrides validate afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFilename); err == nil {
			path = DefaultConfigFilename
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		applog.Debugf("Config: Loaded %s", path)
	}

	cfg.applyEnvOverrides()
	return &cfg, nil
}

// Validate checks value ranges and required addresses.
func (c *Config) Validate() error {
	if _, ok := applog.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Signal.Scenario == "" {
		return fmt.Errorf("%w: signal.scenario must be set", ErrInvalid)
	}
	if c.Signal.SampleRate < MinSampleRate || c.Signal.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: signal.sample_rate %d outside [%d, %d]",
			ErrInvalid, c.Signal.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Signal.Peaks < 0 {
		return fmt.Errorf("%w: signal.peaks must not be negative", ErrInvalid)
	}

	if c.Export.Enabled {
		if c.Export.OutputDir == "" {
			return fmt.Errorf("%w: export.output_dir must be set when export is enabled", ErrInvalid)
		}
		switch c.Export.BitDepth {
		case 16, 24, 32:
		default:
			return fmt.Errorf("%w: export.bit_depth %d (want 16, 24 or 32)", ErrInvalid, c.Export.BitDepth)
		}
	}

	if c.Transport.UDPEnabled {
		if !strings.Contains(c.Transport.UDPTargetAddress, ":") {
			return fmt.Errorf("%w: transport.udp_target_address %q (missing port?)", ErrInvalid, c.Transport.UDPTargetAddress)
		}
		if c.Transport.UDPSendInterval < 0 {
			return fmt.Errorf("%w: transport.udp_send_interval must not be negative", ErrInvalid)
		}
	}
	if c.Transport.WebSocketEnabled && !strings.Contains(c.Transport.WebSocketAddress, ":") {
		return fmt.Errorf("%w: transport.websocket_address %q (missing port?)", ErrInvalid, c.Transport.WebSocketAddress)
	}
	return nil
}

// applyEnvOverrides reads ENV_* variables. Unparseable values are ignored
// with a warning.
func (c *Config) applyEnvOverrides() {
	boolEnv := func(name string, dst *bool) {
		if val, ok := os.LookupEnv(name); ok {
			b, err := strconv.ParseBool(val)
			if err != nil {
				applog.Warnf("Config: Ignoring %s=%q: %v", name, val, err)
				return
			}
			*dst = b
			applog.Debugf("Config: %s overrides to %v", name, b)
		}
	}
	stringEnv := func(name string, dst *string) {
		if val, ok := os.LookupEnv(name); ok {
			*dst = val
			applog.Debugf("Config: %s overrides to %q", name, val)
		}
	}

	// General.
	boolEnv("ENV_DEBUG", &c.Debug)
	stringEnv("ENV_LOG_LEVEL", &c.LogLevel)

	// Signal.
	stringEnv("ENV_SCENARIO", &c.Signal.Scenario)
	if val, ok := os.LookupEnv("ENV_SAMPLE_RATE"); ok {
		rate, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			applog.Warnf("Config: Ignoring ENV_SAMPLE_RATE=%q: %v", val, err)
		} else {
			c.Signal.SampleRate = uint32(rate)
			applog.Debugf("Config: ENV_SAMPLE_RATE overrides to %d", rate)
		}
	}

	// Transport.
	boolEnv("ENV_UDP_ENABLED", &c.Transport.UDPEnabled)
	stringEnv("ENV_UDP_TARGET_ADDRESS", &c.Transport.UDPTargetAddress)
	if val, ok := os.LookupEnv("ENV_UDP_SEND_INTERVAL"); ok {
		dur, err := time.ParseDuration(val)
		if err != nil {
			applog.Warnf("Config: Ignoring ENV_UDP_SEND_INTERVAL=%q: %v", val, err)
		} else {
			c.Transport.UDPSendInterval = dur
			applog.Debugf("Config: ENV_UDP_SEND_INTERVAL overrides to %s", dur)
		}
	}
	boolEnv("ENV_WS_ENABLED", &c.Transport.WebSocketEnabled)
	stringEnv("ENV_WS_ADDRESS", &c.Transport.WebSocketAddress)
}
