// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"spectra/cmd"
	"spectra/internal/analysis"
	"spectra/internal/config"
	"spectra/internal/export"
	applog "spectra/internal/log"
	"spectra/internal/metrics"
	"spectra/internal/playground"
	"spectra/internal/plot"
	"spectra/internal/signals"
	"spectra/internal/timing"
	"spectra/internal/transport"
	"spectra/internal/transport/udp"
	"spectra/internal/tui"
	"spectra/pkg/build"
)

// verifyTolerance bounds the float32 FFT against the float64 references.
const verifyTolerance = 1e-3

var errVerifyFailed = errors.New("FFT deviates from the reference transforms")

// main is the entry point for the signal playground.
//
// 1. Startup: build info, command line and config, logging.
// 2. One-off commands (list, verify, tui) run and exit.
// 3. Run: play the scenario, report peaks, export and publish the frame.
// 4. Serve: with live transports, republish until SIGINT/SIGTERM, then close.
func main() {
	// ==================== STARTUP ====================

	if missing := build.Initialize(); len(missing) > 0 {
		applog.Debugf("Build: ldflags not set for %v, using development defaults", missing)
	}

	cfg, err := cmd.ParseArgs(os.Args[1:])
	if err != nil {
		applog.Fatalf("%v", err)
	}
	if cfg == nil {
		return
	}
	configureLogging(cfg)

	// ==================== COMMANDS ====================

	switch cfg.Command {
	case cmd.CommandList:
		err = listScenarios(os.Stdout)
	case cmd.CommandVerify:
		err = verify(cfg, os.Stdout)
	case cmd.CommandTUI:
		err = runTUI(cfg)
	default:
		err = run(cfg, waitForSignal)
	}
	if err != nil {
		applog.Fatalf("%v", err)
	}
}

func configureLogging(cfg *config.Config) {
	level, _ := applog.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = applog.LevelDebug
	}
	applog.SetLevel(level)

	info := build.GetBuildFlags()
	applog.Debugf("Build: %s %s (commit %s, built %s)", info.Name, info.Version, info.Commit, info.Time)
}

func listScenarios(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, s := range playground.Scenarios() {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Description)
	}
	return tw.Flush()
}

// verifySignal is the 4/6/16 Hz test tone over one second at rate.
func verifySignal(rate uint32) *signals.RawSignal {
	opt := signals.WithSampleRate(rate)
	return signals.ToRawSignal(signals.NewCombinedSignal(1,
		signals.NewSineSignal(2.5, 4, 0, 1, opt),
		signals.NewSineSignal(1.5, 6, 0, 1, opt),
		signals.NewSineSignal(1.5, 16, 0, 1, opt),
	))
}

func verify(cfg *config.Config, w io.Writer) error {
	report, err := analysis.Verify(verifySignal(cfg.Signal.SampleRate))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "samples\t%d\n", report.Size)
	fmt.Fprintf(tw, "vs DFT\t%.3e\n", report.DFT)
	fmt.Fprintf(tw, "vs gonum\t%.3e\n", report.Gonum)
	fmt.Fprintf(tw, "vs go-dsp\t%.3e\n", report.GoDSP)
	fmt.Fprintf(tw, "round trip\t%.3e\n", report.RoundTrip)
	if err := tw.Flush(); err != nil {
		return err
	}

	if !report.Within(verifyTolerance) {
		return fmt.Errorf("%w (tolerance %.0e)", errVerifyFailed, verifyTolerance)
	}
	applog.Infof("Verify: FFT matches all references within %.0e", verifyTolerance)
	return nil
}

func runTUI(cfg *config.Config) error {
	// Log lines would tear the alternate screen.
	applog.SetOutput(io.Discard)
	defer applog.SetOutput(os.Stderr)

	outputs, _, err := openTransports(cfg, false)
	if err != nil {
		return err
	}
	defer outputs.Close()

	return tui.Run(tui.Options{
		SampleRate:    cfg.Signal.SampleRate,
		PeakThreshold: cfg.Signal.PeakThreshold,
		Peaks:         cfg.Signal.Peaks,
		OnFrame: func(frame plot.Frame) {
			if err := outputs.Send(frame); err != nil {
				applog.Warnf("TUI: Publishing frame failed: %v", err)
			}
		},
	})
}

// openTransports builds the configured outputs. The logging transport is
// included when withLog is set. The UDP publisher is returned separately so
// the caller can start republishing. A WebSocket server also exports the
// transform timings measured from then on and the frames both network
// transports publish.
func openTransports(cfg *config.Config, withLog bool) (transport.Multi, *udp.FramePublisher, error) {
	var (
		outputs   transport.Multi
		publisher *udp.FramePublisher
	)
	if withLog {
		outputs = append(outputs, transport.NewLoggingTransport())
	}

	// Only a WebSocket server can serve the registry.
	var stats *metrics.Stats
	if cfg.Transport.WebSocketEnabled {
		stats = metrics.New()
	}

	if cfg.Transport.UDPEnabled {
		sender, err := udp.NewSender(cfg.Transport.UDPTargetAddress)
		if err != nil {
			outputs.Close()
			return nil, nil, fmt.Errorf("udp transport: %w", err)
		}
		publisher, err = udp.NewFramePublisher(sender, udp.WithStats(stats))
		if err != nil {
			sender.Close()
			outputs.Close()
			return nil, nil, fmt.Errorf("udp transport: %w", err)
		}
		outputs = append(outputs, publisher)
	}

	if stats != nil {
		timing.SetObserver(stats.ObserveDuration)

		ws, err := transport.NewWebSocketTransport(cfg.Transport.WebSocketAddress, transport.WithStats(stats))
		if err != nil {
			timing.SetObserver(nil)
			outputs.Close()
			return nil, nil, fmt.Errorf("websocket transport: %w", err)
		}
		applog.Infof("Main: Serving frames on ws://%[1]s/ws, metrics on http://%[1]s/metrics", ws.Addr())
		outputs = append(outputs, ws)
	}
	return outputs, publisher, nil
}

// run plays the configured scenario and publishes the frame. When the
// configuration keeps transports alive it blocks in wait.
func run(cfg *config.Config, wait func()) error {
	name, rate := cfg.Signal.Scenario, cfg.Signal.SampleRate

	outputs, publisher, err := openTransports(cfg, true)
	if err != nil {
		return err
	}
	defer func() {
		timing.SetObserver(nil)
		if err := outputs.Close(); err != nil {
			applog.Errorf("Main: Closing transports: %v", err)
		}
	}()

	p, err := playground.Play(name, rate)
	if err != nil {
		return err
	}
	frame := p.Frame(name, rate)

	for _, peak := range analysis.SlotPeaks(p.Middle, cfg.Signal.PeakThreshold, cfg.Signal.Peaks) {
		applog.Infof("Peak: %8.2f Hz (bin %d) amplitude %.3f", peak.Frequency, peak.Bin, peak.Amplitude)
	}
	applog.Infof("Spectrum: centroid %.2f Hz", analysis.SlotCentroid(p.Middle))
	logBands(p.Middle)

	if cfg.Export.Enabled {
		paths, err := export.ExportFrame(cfg.Export.OutputDir, frame, cfg.Export.BitDepth)
		if err != nil {
			return err
		}
		for _, path := range paths {
			applog.Infof("Export: Wrote %s", path)
		}
	}

	if err := outputs.Send(frame); err != nil {
		return err
	}

	if !cfg.Waits() {
		return nil
	}
	if publisher != nil && cfg.Transport.UDPSendInterval > 0 {
		publisher.Start(cfg.Transport.UDPSendInterval)
	}
	fmt.Printf("Serving '%s' frames, press Ctrl+C to stop. '%s --help' for usage information.\n",
		name, build.GetBuildFlags().Name)
	wait()
	return nil
}

func logBands(slot *signals.Slot) {
	for _, s := range slot.Signals() {
		raw, ok := s.(*signals.RawSignal)
		if !ok {
			continue
		}
		for _, b := range analysis.BandEnergies(raw, analysis.DefaultBands()) {
			applog.Debugf("Spectrum: band %-5s [%g, %g) Hz rms %.3f over %d bins", b.Name, b.LowHz, b.HighHz, b.Energy, b.Bins)
		}
		return
	}
}

func waitForSignal() {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)
	<-done
	applog.Infof("Main: Shutting down")
}
