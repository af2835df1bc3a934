// SPDX-License-Identifier: MIT

/*
Package playground holds the demonstration scenarios. Each one builds a test
signal, transforms it and fills the three plot slots with the input signal,
its amplitude spectrum and the reconstruction.

Scenarios take the sampling rate as a parameter so tests can run them on
small buffers; the command line uses signals.DefaultSampleRate.
*/
package playground

import (
	"errors"
	"fmt"
	"sort"

	applog "spectra/internal/log"
	"spectra/internal/plot"
	"spectra/internal/signals"
	"spectra/internal/timing"
)

// DefaultScenario runs when none is configured.
const DefaultScenario = "fft"

var ErrUnknownScenario = errors.New("playground: unknown scenario")

// RunFunc fills the top, middle and bottom slots.
type RunFunc func(top, middle, bottom *signals.Slot, rate uint32) error

// Scenario is a named composition of signals and transforms.
type Scenario struct {
	Name        string
	Description string
	Run         RunFunc
}

var registry = map[string]Scenario{
	"dft": {
		Name:        "dft",
		Description: "DFT of sampled 4/6.5/16.5 Hz sines over 2 s, rebuilt with InverseFT2",
		Run:         dftOnSignal,
	},
	"dft-direct": {
		Name:        "dft-direct",
		Description: "DFT of a combined 4/6/4 Hz signal evaluated directly, rebuilt with InverseFT",
		Run:         dftOnSignalDirect,
	},
	"filter": {
		Name:        "filter",
		Description: "DFT over 5 s, 6.5 and 16.5 Hz removed, rebuilt with InverseFT",
		Run:         filterSignal,
	},
	"filter-direct": {
		Name:        "filter-direct",
		Description: "DFT of a combined signal over 3 s, 6.5 and 16.5 Hz removed, rebuilt with InverseFT2",
		Run:         filterSignalDirect,
	},
	"fft": {
		Name:        "fft",
		Description: "FFT of a combined 4/6/16 Hz signal over 3 s, 16 and 4 Hz removed, rebuilt with InverseFT2",
		Run:         fastFT,
	},
}

// Names returns the registered scenario names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenarios returns every registered scenario sorted by name.
func Scenarios() []Scenario {
	out := make([]Scenario, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, error) {
	s, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScenario, name, Names())
	}
	return s, nil
}

// Play runs the named scenario into a fresh plot.
func Play(name string, rate uint32) (*plot.Plot, error) {
	s, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if rate == 0 {
		rate = signals.DefaultSampleRate
	}

	defer timing.Measure(fmt.Sprintf("scenario %s", name))()
	applog.Infof("Playground: Running scenario %q at %d Hz", name, rate)

	p := plot.New()
	if err := s.Run(p.Top, p.Middle, p.Bottom, rate); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", name, err)
	}
	return p, nil
}
