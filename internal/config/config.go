// SPDX-License-Identifier: MIT
package config

import "time"

// Defaults and limits for the signal pipeline.
const (
	DefaultScenario      = "fft"
	DefaultSampleRate    = 1000 // Hz, matches signals.DefaultSampleRate
	DefaultPeakThreshold = 0.5
	DefaultPeaks         = 5
	DefaultLogLevel      = "info"

	DefaultExportDir      = "./exports"
	DefaultBitDepth       = 16
	DefaultUDPTarget      = "127.0.0.1:9090"
	DefaultUDPInterval    = time.Second
	DefaultWebSocketAddr  = "127.0.0.1:8080"
	DefaultConfigFilename = "config.yaml"

	// The direct DFT scenarios are O(N^2) in the sample count.
	MinSampleRate = 64
	MaxSampleRate = 8000
)

// Config is the application configuration, loaded from YAML.
type Config struct {
	Debug     bool            `yaml:"debug"`             // Debug mode: forces debug logging, including transform timings.
	LogLevel  string          `yaml:"log_level"`         // debug, info, warn or error.
	Command   string          `yaml:"command,omitempty"` // One-off command instead of running a scenario (e.g. "list").
	Signal    SignalConfig    `yaml:"signal"`
	Export    ExportConfig    `yaml:"export"`
	Transport TransportConfig `yaml:"transport"`
}

// SignalConfig selects what to run.
type SignalConfig struct {
	Scenario      string  `yaml:"scenario"`       // Playground scenario name.
	SampleRate    uint32  `yaml:"sample_rate"`    // Samples per second of generated signals.
	PeakThreshold float32 `yaml:"peak_threshold"` // Minimum amplitude reported as a peak.
	Peaks         int     `yaml:"peaks"`          // Number of peaks to report.
}

// ExportConfig controls WAV export of plotted traces.
type ExportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
	BitDepth  int    `yaml:"bit_depth"` // 16, 24 or 32.
}

// TransportConfig controls where frames are published.
type TransportConfig struct {
	UDPEnabled       bool          `yaml:"udp_enabled"`
	UDPTargetAddress string        `yaml:"udp_target_address"` // host:port
	UDPSendInterval  time.Duration `yaml:"udp_send_interval"`  // Republish period while waiting; 0 sends once.
	WebSocketEnabled bool          `yaml:"websocket_enabled"`
	WebSocketAddress string        `yaml:"websocket_address"` // host:port, served on /ws
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Signal: SignalConfig{
			Scenario:      DefaultScenario,
			SampleRate:    DefaultSampleRate,
			PeakThreshold: DefaultPeakThreshold,
			Peaks:         DefaultPeaks,
		},
		Export: ExportConfig{
			OutputDir: DefaultExportDir,
			BitDepth:  DefaultBitDepth,
		},
		Transport: TransportConfig{
			UDPTargetAddress: DefaultUDPTarget,
			UDPSendInterval:  DefaultUDPInterval,
			WebSocketAddress: DefaultWebSocketAddr,
		},
	}
}

// Waits reports whether the run keeps serving after the frame is published.
func (c *Config) Waits() bool {
	return c.Transport.WebSocketEnabled || (c.Transport.UDPEnabled && c.Transport.UDPSendInterval > 0)
}
