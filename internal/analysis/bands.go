// SPDX-License-Identifier: MIT
package analysis

import (
	"math"

	"spectra/internal/signals"
)

// Band is a named frequency range and the energy measured in it.
type Band struct {
	Name   string  `json:"name"`
	LowHz  float64 `json:"lowHz"`
	HighHz float64 `json:"highHz"` // exclusive; +Inf for an open band
	Energy float64 `json:"energy"` // RMS amplitude of the bins in range
	Bins   int     `json:"bins"`
}

// DefaultBands covers the range the playground tones live in.
func DefaultBands() []Band {
	return []Band{
		{Name: "dc", LowHz: 0, HighHz: 1},
		{Name: "low", LowHz: 1, HighHz: 5},
		{Name: "mid", LowHz: 5, HighHz: 10},
		{Name: "high", LowHz: 10, HighHz: 20},
		{Name: "upper", LowHz: 20, HighHz: math.Inf(1)},
	}
}

// BandEnergies sums the squared amplitudes of the lower half of a spectrum
// into bands and returns a copy of bands with Energy set to the RMS per band.
// A bin belongs to the first band containing its frequency.
func BandEnergies(amplitudes *signals.RawSignal, bands []Band) []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	sums := make([]float64, len(out))
	for i := range out {
		out[i].Energy, out[i].Bins = 0, 0
	}

	width := BinWidth(amplitudes)
	if width == 0 {
		return out
	}
	for k := 0; k <= amplitudes.Size()/2; k++ {
		freq := float64(k) * width
		for i := range out {
			if freq >= out[i].LowHz && freq < out[i].HighHz {
				a := float64(amplitudes.Data[k].Re)
				sums[i] += a * a
				out[i].Bins++
				break
			}
		}
	}

	for i := range out {
		if out[i].Bins > 0 {
			out[i].Energy = math.Sqrt(sums[i] / float64(out[i].Bins))
		}
	}
	return out
}
