// SPDX-License-Identifier: MIT
package transform

import (
	"fmt"

	"spectra/internal/signals"
	"spectra/internal/timing"
	"spectra/pkg/bitint"
)

// FFT computes the same spectrum as DFT with a recursive radix-2
// decimation-in-time transform. The sample count must be a power of two.
func FFT(signal *signals.RawSignal) (*signals.RawSignal, error) {
	defer timing.Measure("FFT")()

	n := signal.Size()
	if !bitint.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: got %d samples", ErrNotPowerOfTwo, n)
	}

	result := signals.NewRawSignal(n, signals.WithSampleRate(signal.SampleRate()))
	copy(result.Times, signal.Times)

	bins := fft(signal.Data)

	// Normalize once here, not per recursion level.
	scale := float32(n)
	for i, b := range bins {
		result.Data[i] = signals.Complex{Re: b.Re / scale, Im: b.Im / scale}
	}
	return result, nil
}

// InverseFFT reconstructs time-domain samples from FFT/DFT coefficients using
// conj(fft(conj(X))). No scaling is applied, matching the inverse convention.
func InverseFFT(coeffs *signals.RawSignal) (*signals.RawSignal, error) {
	defer timing.Measure("InverseFFT")()

	n := coeffs.Size()
	if !bitint.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: got %d samples", ErrNotPowerOfTwo, n)
	}

	conj := make([]signals.Complex, n)
	for i, c := range coeffs.Data {
		conj[i] = signals.Complex{Re: c.Re, Im: -c.Im}
	}

	result := signals.NewRawSignal(n, signals.WithSampleRate(coeffs.SampleRate()))
	copy(result.Times, coeffs.Times)
	for i, b := range fft(conj) {
		result.Data[i] = signals.Complex{Re: b.Re, Im: -b.Im}
	}
	return result, nil
}

// fft is the unnormalized recursion. len(samples) must be a power of two.
// The returned slice never aliases samples.
func fft(samples []signals.Complex) []signals.Complex {
	n := len(samples)
	if n == 1 {
		return []signals.Complex{samples[0]}
	}

	half := n / 2
	even := make([]signals.Complex, half)
	odd := make([]signals.Complex, half)
	for i := range half {
		even[i] = samples[2*i]
		odd[i] = samples[2*i+1]
	}

	fEven := fft(even)
	fOdd := fft(odd)

	bins := make([]signals.Complex, n)
	for k := range half {
		twiddle := signals.Mul(signals.Polar(1, -2*signals.Pi*float32(k)/float32(n)), fOdd[k])
		bins[k] = signals.Add(fEven[k], twiddle)
		bins[k+half] = signals.Sub(fEven[k], twiddle)
	}
	return bins
}
