// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := Default()
	if *cfg != want {
		t.Errorf("expected defaults %+v, got %+v", want, *cfg)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("nonexistent.yaml")
	if err == nil {
		t.Errorf("expected error for missing file, got nil")
	}
	if cfg != nil {
		t.Errorf("expected nil config on error, got %+v", cfg)
	}
}

func TestLoadConfig_UnmarshalError(t *testing.T) {
	path := writeTempConfig(t, ":\n:bad")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeTempConfig(t, `
log_level: debug
signal:
  scenario: filter
  sample_rate: 500
export:
  enabled: true
  output_dir: /tmp/out
  bit_depth: 24
transport:
  udp_enabled: true
  udp_target_address: 10.0.0.1:9999
  udp_send_interval: 250ms
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Signal.Scenario != "filter" || cfg.Signal.SampleRate != 500 {
		t.Errorf("Signal = %+v", cfg.Signal)
	}
	// Unset keys keep their defaults.
	if cfg.Signal.Peaks != DefaultPeaks {
		t.Errorf("Peaks = %d, want default %d", cfg.Signal.Peaks, DefaultPeaks)
	}
	if !cfg.Export.Enabled || cfg.Export.OutputDir != "/tmp/out" || cfg.Export.BitDepth != 24 {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Transport.UDPSendInterval != 250*time.Millisecond {
		t.Errorf("UDPSendInterval = %s, want 250ms", cfg.Transport.UDPSendInterval)
	}
	if !cfg.Waits() {
		t.Error("Waits() = false with UDP republishing enabled")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ENV_DEBUG", "true")
	t.Setenv("ENV_LOG_LEVEL", "warn")
	t.Setenv("ENV_SCENARIO", "dft")
	t.Setenv("ENV_SAMPLE_RATE", "2000")
	t.Setenv("ENV_UDP_ENABLED", "1")
	t.Setenv("ENV_UDP_TARGET_ADDRESS", "127.0.0.1:7000")
	t.Setenv("ENV_UDP_SEND_INTERVAL", "0s")
	t.Setenv("ENV_WS_ENABLED", "true")
	t.Setenv("ENV_WS_ADDRESS", ":9000")

	cfg, err := LoadConfig(writeTempConfig(t, "signal:\n  scenario: fft\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !cfg.Debug || cfg.LogLevel != "warn" {
		t.Errorf("Debug/LogLevel = %v/%q", cfg.Debug, cfg.LogLevel)
	}
	if cfg.Signal.Scenario != "dft" || cfg.Signal.SampleRate != 2000 {
		t.Errorf("Signal = %+v, env must win over the file", cfg.Signal)
	}
	tr := cfg.Transport
	if !tr.UDPEnabled || tr.UDPTargetAddress != "127.0.0.1:7000" || tr.UDPSendInterval != 0 {
		t.Errorf("UDP transport = %+v", tr)
	}
	if !tr.WebSocketEnabled || tr.WebSocketAddress != ":9000" {
		t.Errorf("WebSocket transport = %+v", tr)
	}
}

func TestLoadConfig_BadEnvIgnored(t *testing.T) {
	t.Setenv("ENV_DEBUG", "maybe")
	t.Setenv("ENV_SAMPLE_RATE", "fast")
	t.Setenv("ENV_UDP_SEND_INTERVAL", "soon")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Debug || cfg.Signal.SampleRate != DefaultSampleRate || cfg.Transport.UDPSendInterval != DefaultUDPInterval {
		t.Errorf("unparseable env values must be ignored, got %+v", cfg)
	}
}

func TestLoad_DefersValidation(t *testing.T) {
	t.Setenv("ENV_SAMPLE_RATE", "10")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Signal.SampleRate != 10 {
		t.Errorf("SampleRate = %d, want env value 10", cfg.Signal.SampleRate)
	}

	if _, err := LoadConfig(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"empty scenario", func(c *Config) { c.Signal.Scenario = "" }},
		{"rate too low", func(c *Config) { c.Signal.SampleRate = MinSampleRate - 1 }},
		{"rate too high", func(c *Config) { c.Signal.SampleRate = MaxSampleRate + 1 }},
		{"negative peaks", func(c *Config) { c.Signal.Peaks = -1 }},
		{"export without dir", func(c *Config) { c.Export.Enabled = true; c.Export.OutputDir = "" }},
		{"export bit depth", func(c *Config) { c.Export.Enabled = true; c.Export.BitDepth = 8 }},
		{"udp without port", func(c *Config) { c.Transport.UDPEnabled = true; c.Transport.UDPTargetAddress = "localhost" }},
		{"udp negative interval", func(c *Config) { c.Transport.UDPEnabled = true; c.Transport.UDPSendInterval = -time.Second }},
		{"websocket without port", func(c *Config) { c.Transport.WebSocketEnabled = true; c.Transport.WebSocketAddress = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalid)
			}
		})
	}

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
	// Disabled sections are not checked.
	cfg.Export.BitDepth = 8
	cfg.Transport.UDPTargetAddress = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with disabled sections = %v", err)
	}
}

func TestWaits(t *testing.T) {
	cfg := Default()
	if cfg.Waits() {
		t.Error("defaults must not wait")
	}
	cfg.Transport.UDPEnabled = true
	cfg.Transport.UDPSendInterval = 0
	if cfg.Waits() {
		t.Error("one-shot UDP must not wait")
	}
	cfg.Transport.WebSocketEnabled = true
	if !cfg.Waits() {
		t.Error("WebSocket viewers keep the run alive")
	}
}
