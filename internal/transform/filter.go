// SPDX-License-Identifier: MIT
package transform

import (
	"fmt"
	"math"

	"spectra/internal/signals"
)

// RemoveFrequency suppresses frequency (Hz) in a spectrum whose time-domain
// signal lasted lengthSeconds. The positive bin sits at frequency*length and
// its mirror at N - frequency*length; see RemoveBin.
func RemoveFrequency(spectrum *signals.RawSignal, frequency float32, lengthSeconds uint32) error {
	if !(frequency >= 0) {
		return fmt.Errorf("%w: frequency %.3f Hz", ErrFrequencyOutOfRange, frequency)
	}
	return RemoveBin(spectrum, frequency*float32(lengthSeconds))
}

// RemoveBin zeroes the floor and ceil bins of a fractional bin index and of
// its mirror N - index, setting each to exactly (0, 0). A mirror at N wraps
// to bin 0.
//
// The spectrum is left untouched when an error is returned.
func RemoveBin(spectrum *signals.RawSignal, index float32) error {
	n := spectrum.Size()
	if n == 0 {
		return ErrEmptySignal
	}
	// Negated so NaN fails as well.
	if !(index >= 0 && index <= float32(n)) {
		return fmt.Errorf("%w: bin %.2f of %d", ErrFrequencyOutOfRange, index, n)
	}

	mirror := float32(n) - index
	for _, at := range []float32{index, mirror} {
		lo := int(math.Floor(float64(at)))
		hi := int(math.Ceil(float64(at)))
		spectrum.Data[lo%n] = signals.Complex{}
		spectrum.Data[hi%n] = signals.Complex{}
	}
	return nil
}

// BinForFrequency returns the fractional bin holding frequency for a buffer
// of size samples taken at rate Hz. Use it when the buffer does not span a
// whole number of seconds, e.g. an analytic signal sampled by index.
func BinForFrequency(frequency float32, size int, rate uint32) float32 {
	if rate == 0 {
		return 0
	}
	return frequency * float32(size) / float32(rate)
}
