// SPDX-License-Identifier: MIT
package playground

import (
	"spectra/internal/signals"
	"spectra/internal/transform"
)

// tone is one sine component: amplitude and frequency in Hz.
type tone struct {
	amplitude float32
	frequency float32
}

var (
	filterTones = []tone{{2.5, 4}, {1.5, 6.5}, {1.5, 16.5}}
	directTones = []tone{{2.5, 4}, {1.5, 6}, {2.5, 4}}
	fastTones   = []tone{{2.5, 4}, {1.5, 6}, {1.5, 16}}

	// Removed by the filter scenarios, leaving the 4 Hz tone.
	filterRemoved = []float32{6.5, 16.5}
	// Removed by the FFT scenario, leaving the 6 Hz tone.
	fastRemoved = []float32{16, 4}
)

func sines(tones []tone, seconds, rate uint32) []signals.Signal {
	out := make([]signals.Signal, len(tones))
	for i, tn := range tones {
		out[i] = signals.NewSineSignal(tn.amplitude, tn.frequency, 0, seconds, signals.WithSampleRate(rate))
	}
	return out
}

func dftOnSignal(top, middle, bottom *signals.Slot, rate uint32) error {
	raw := signals.ToRawSignal(sines(filterTones, 2, rate)...)

	coeffs := transform.DFT(raw)
	amplitudes := transform.GetAmplitudes(coeffs)
	reconstructed := transform.InverseFT2(coeffs)

	top.AddSignal(raw)
	middle.AddSignal(amplitudes)
	bottom.AddSignal(reconstructed)
	return nil
}

func dftOnSignalDirect(top, middle, bottom *signals.Slot, rate uint32) error {
	combined := signals.NewCombinedSignal(2, sines(directTones, 2, rate)...)

	coeffs := transform.DFT(combined)
	amplitudes := transform.GetAmplitudes(coeffs)
	reconstructed := transform.InverseFT(coeffs)

	top.AddSignal(combined)
	middle.AddSignal(amplitudes)
	bottom.AddSignal(reconstructed)
	return nil
}

func filterSignal(top, middle, bottom *signals.Slot, rate uint32) error {
	const seconds = 5
	raw := signals.ToRawSignal(sines(filterTones, seconds, rate)...)

	coeffs := transform.DFT(raw)
	amplitudes := transform.GetAmplitudes(coeffs)

	for _, f := range filterRemoved {
		if err := transform.RemoveFrequency(coeffs, f, seconds); err != nil {
			return err
		}
	}
	reconstructed := transform.InverseFT(coeffs)

	top.AddSignal(raw)
	middle.AddSignal(amplitudes)
	bottom.AddSignal(reconstructed)
	return nil
}

func filterSignalDirect(top, middle, bottom *signals.Slot, rate uint32) error {
	const seconds = 3
	combined := signals.NewCombinedSignal(seconds, sines(filterTones, seconds, rate)...)

	coeffs := transform.DFT(combined)
	amplitudes := transform.GetAmplitudes(coeffs)

	// Sampled by index, the buffer spans Size/rate seconds rather than a
	// whole number, so bins are located from the sample count.
	for _, f := range filterRemoved {
		bin := transform.BinForFrequency(f, coeffs.Size(), rate)
		if err := transform.RemoveBin(coeffs, bin); err != nil {
			return err
		}
	}
	reconstructed := transform.InverseFT2(coeffs)

	top.AddSignal(signals.ToRawSignal(combined))
	middle.AddSignal(amplitudes)
	bottom.AddSignal(reconstructed)
	return nil
}

func fastFT(top, middle, bottom *signals.Slot, rate uint32) error {
	const seconds = 3
	combined := signals.NewCombinedSignal(seconds, sines(fastTones, seconds, rate)...)
	raw := signals.ToRawSignal(combined)

	coeffs, err := transform.FFT(raw)
	if err != nil {
		return err
	}
	amplitudes := transform.GetAmplitudes(coeffs)

	for _, f := range fastRemoved {
		if err := transform.RemoveFrequency(coeffs, f, combined.Length()); err != nil {
			return err
		}
	}
	reconstructed := transform.InverseFT2(coeffs)

	top.AddSignal(raw)
	middle.AddSignal(amplitudes)
	bottom.AddSignal(reconstructed)
	return nil
}
