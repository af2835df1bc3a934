// SPDX-License-Identifier: MIT

/*
Package transform converts signals between the time and frequency domains.

Forward transforms (DFT, FFT) divide by the sample count N; inverse
transforms (InverseFT, InverseFT2, InverseFFT) do not. Together they form the
1/N-forward transform pair, so a forward transform followed by any inverse
reproduces the original samples.

For a raw signal produced by signals.ToRawSignal, the buffer spans exactly the
signal's length in seconds, so bin k holds frequency k/length Hz and bin N-k
holds its mirror.

Every function returning a *signals.RawSignal allocates a new buffer; inputs
are never aliased by outputs.
*/
package transform

import (
	"errors"

	"spectra/internal/signals"
	"spectra/internal/timing"
)

var (
	ErrEmptySignal         = errors.New("transform: empty signal")
	ErrNotPowerOfTwo       = errors.New("transform: sample count is not a power of two")
	ErrSizeMismatch        = errors.New("transform: signal sizes differ")
	ErrFrequencyOutOfRange = errors.New("transform: frequency outside spectrum")
)

// Dot correlates signal with basis over signal.Size() samples:
//
//	re = sum(basis.re[i] * signal.re[i]) / N
//	im = sum(basis.im[i] * signal.re[i]) / N
func Dot(signal, basis signals.Signal) signals.Complex {
	n := signal.Size()
	if n == 0 {
		return signals.Complex{}
	}

	var re, im float32
	for i := range n {
		s := signal.Sample(i)
		b := basis.Sample(i)
		re += b.Re * s.Re
		im += b.Im * s.Re
	}
	return signals.Complex{Re: re / float32(n), Im: im / float32(n)}
}

// DFT computes the discrete Fourier transform by direct correlation against
// one complex basis per bin. O(N^2); the reference the FFT is checked against.
//
// Any Signal is accepted and evaluated by index, so an analytic signal is
// sampled through its own time base.
func DFT(signal signals.Signal) *signals.RawSignal {
	defer timing.Measure("DFT")()

	n := signal.Size()
	rate := signals.WithSampleRate(signal.SampleRate())
	result := signals.NewRawSignal(n, rate)

	for k := range n {
		// Amplitude -1 gives the e^(-i*theta) forward kernel.
		basis := signals.NewBasisSignal(-1, float32(k), n, rate)
		result.Times[k] = signal.Time(k)
		result.Data[k] = Dot(signal, basis)
	}
	return result
}

// GetAmplitudes returns the amplitude spectrum: 2*|bin| in the real part,
// zero imaginary part, times copied unchanged.
func GetAmplitudes(spectrum *signals.RawSignal) *signals.RawSignal {
	result := signals.NewRawSignal(spectrum.Size(), signals.WithSampleRate(spectrum.SampleRate()))
	copy(result.Times, spectrum.Times)
	for i, c := range spectrum.Data {
		result.Data[i].Re = 2 * signals.Magnitude(c)
	}
	return result
}
