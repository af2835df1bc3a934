// SPDX-License-Identifier: MIT

/*
Package analysis reads results out of amplitude spectra and cross-checks the
transform package against third-party FFTs (gonum and go-dsp).

Only the lower half of a spectrum (bins 0..N/2) is inspected; the upper half
mirrors it for real input.
*/
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"spectra/internal/signals"
)

// Peak is a local maximum of an amplitude spectrum.
type Peak struct {
	Bin       int     `json:"bin"`
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float32 `json:"amplitude"`
}

// BinWidth returns the frequency step between adjacent bins of a spectrum,
// derived from its sample times: 1 / (N * dt).
func BinWidth(spectrum *signals.RawSignal) float64 {
	n := spectrum.Size()
	if n < 2 {
		return 0
	}
	dt := float64(spectrum.Times[1] - spectrum.Times[0])
	if dt <= 0 {
		return 0
	}
	return 1 / (float64(n) * dt)
}

// FindPeaks returns up to limit local maxima above threshold in the lower half
// of an amplitude spectrum, largest first. limit <= 0 returns all of them.
func FindPeaks(amplitudes *signals.RawSignal, threshold float32, limit int) []Peak {
	n := amplitudes.Size()
	width := BinWidth(amplitudes)

	var peaks []Peak
	for k := 0; k <= n/2 && k < n; k++ {
		v := amplitudes.Data[k].Re
		if v <= threshold {
			continue
		}
		if k > 0 && amplitudes.Data[k-1].Re > v {
			continue
		}
		if k+1 < n && amplitudes.Data[k+1].Re >= v {
			continue
		}
		peaks = append(peaks, Peak{Bin: k, Frequency: float64(k) * width, Amplitude: v})
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Amplitude > peaks[j].Amplitude
	})
	if limit > 0 && len(peaks) > limit {
		peaks = peaks[:limit]
	}
	return peaks
}

// SlotPeaks runs FindPeaks over every raw signal in slot and merges the
// results, largest first.
func SlotPeaks(slot *signals.Slot, threshold float32, limit int) []Peak {
	var peaks []Peak
	for _, s := range slot.Signals() {
		raw, ok := s.(*signals.RawSignal)
		if !ok {
			continue
		}
		peaks = append(peaks, FindPeaks(raw, threshold, 0)...)
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Amplitude > peaks[j].Amplitude
	})
	if limit > 0 && len(peaks) > limit {
		peaks = peaks[:limit]
	}
	return peaks
}

// Centroid returns the amplitude-weighted mean frequency of the lower half
// of a spectrum, or 0 when it carries no energy.
func Centroid(amplitudes *signals.RawSignal) float64 {
	n := amplitudes.Size()/2 + 1
	if amplitudes.Size() == 0 {
		return 0
	}
	width := BinWidth(amplitudes)

	freqs := make([]float64, n)
	weights := make([]float64, n)
	var total float64
	for k := range n {
		freqs[k] = float64(k) * width
		weights[k] = float64(amplitudes.Data[k].Re)
		total += weights[k]
	}
	if total == 0 {
		return 0
	}
	return stat.Mean(freqs, weights)
}

// SlotCentroid returns the Centroid of the first raw signal in slot.
func SlotCentroid(slot *signals.Slot) float64 {
	for _, s := range slot.Signals() {
		if raw, ok := s.(*signals.RawSignal); ok {
			return Centroid(raw)
		}
	}
	return 0
}
