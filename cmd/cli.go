// SPDX-License-Identifier: MIT
package cmd

import (
	"io"
	"time"

	"spectra/internal/config"
	"spectra/pkg/build"

	"github.com/spf13/cobra"
)

// Commands selected on the command line.
const (
	CommandRun    = "run"
	CommandList   = "list"
	CommandVerify = "verify"
	CommandTUI    = "tui"
)

// options holds raw flag values. They only override the loaded config when
// the flag was actually given.
type options struct {
	configPath string
	scenario   string
	sampleRate uint32
	exportDir  string
	bitDepth   int
	udpAddress string
	udpEvery   time.Duration
	wsAddress  string
	verbose    bool
	command    string
}

// ParseArgs parses args (without the program name), loads the configuration
// and applies flag overrides on top of it. It returns a nil config and nil
// error when only help or version output was requested.
func ParseArgs(args []string) (*config.Config, error) {
	return parseArgs(args, nil)
}

// parseArgs is ParseArgs with the cobra output redirected to out when set.
func parseArgs(args []string, out io.Writer) (*config.Config, error) {
	buildInfo := build.GetBuildFlags()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.command = CommandRun
			return nil
		},
	}
	if out != nil {
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(&cobra.Command{
		Use:   CommandList,
		Short: "List the available playground scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts.command = CommandList
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   CommandVerify,
		Short: "Check the FFT against the direct DFT, gonum and go-dsp",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts.command = CommandVerify
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   CommandTUI,
		Short: "Browse and run scenarios interactively",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts.command = CommandTUI
		},
	})

	flags := rootCmd.PersistentFlags()

	// Configuration
	flags.StringVarP(&opts.configPath, "config", "f", "",
		"Path to a YAML config file (default: ./"+config.DefaultConfigFilename+" when present)")

	// Signal
	flags.StringVarP(&opts.scenario, "scenario", "s", config.DefaultScenario,
		"Playground scenario to run. Use 'list' to see them.")
	flags.Uint32VarP(&opts.sampleRate, "sample-rate", "r", config.DefaultSampleRate,
		"Sample rate of generated signals, measured in Hertz (Hz)")

	// Export
	flags.StringVarP(&opts.exportDir, "export", "e", "",
		"Write every plotted trace as a WAV file into this directory")
	flags.IntVar(&opts.bitDepth, "bit-depth", config.DefaultBitDepth,
		"WAV export bit depth (16, 24 or 32)")

	// Transport
	flags.StringVar(&opts.udpAddress, "udp", "",
		"Publish frames as UDP datagrams to host:port")
	flags.DurationVar(&opts.udpEvery, "udp-interval", config.DefaultUDPInterval,
		"Republish period for UDP frames, 0 sends once")
	flags.StringVar(&opts.wsAddress, "ws", "",
		"Serve frames to WebSocket viewers on host:port (path /ws)")

	// Debug
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Show verbose output, including transform timings")

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}
	if opts.command == "" {
		// Help or version was printed.
		return nil, nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	opts.apply(cfg, flags.Changed)
	// Validate only after flags had their chance to fix env or file values.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply copies explicitly set flags into cfg.
func (o *options) apply(cfg *config.Config, changed func(name string) bool) {
	if o.command != CommandRun || cfg.Command == "" {
		cfg.Command = o.command
	}
	if changed("scenario") {
		cfg.Signal.Scenario = o.scenario
	}
	if changed("sample-rate") {
		cfg.Signal.SampleRate = o.sampleRate
	}
	if changed("export") {
		cfg.Export.Enabled = true
		cfg.Export.OutputDir = o.exportDir
	}
	if changed("bit-depth") {
		cfg.Export.BitDepth = o.bitDepth
	}
	if changed("udp") {
		cfg.Transport.UDPEnabled = true
		cfg.Transport.UDPTargetAddress = o.udpAddress
	}
	if changed("udp-interval") {
		cfg.Transport.UDPSendInterval = o.udpEvery
	}
	if changed("ws") {
		cfg.Transport.WebSocketEnabled = true
		cfg.Transport.WebSocketAddress = o.wsAddress
	}
	if o.verbose {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
}
