// SPDX-License-Identifier: MIT
package transform

import (
	"fmt"

	"spectra/internal/signals"
	"spectra/internal/timing"
)

// InverseFT reconstructs a signal by materializing every basis function
// scaled by its coefficient and summing the buffers with AddSignals.
// O(N^2) time with one allocation per bin; see InverseFT2 for the in-place
// variant.
func InverseFT(coeffs *signals.RawSignal) *signals.RawSignal {
	defer timing.Measure("InverseFT")()

	n := coeffs.Size()
	rate := signals.WithSampleRate(coeffs.SampleRate())

	reconstructed := signals.NewRawSignal(n, rate)
	copy(reconstructed.Times, coeffs.Times)

	for k := range n {
		weighted := signals.NewBasisSignal(1, float32(k), n, rate).ToRawSignalAndMultiply(coeffs.Data[k])
		reconstructed = add(reconstructed, weighted)
	}
	return reconstructed
}

// InverseFT2 computes the same sum as InverseFT but evaluates each basis
// sample directly and accumulates into a single output buffer.
func InverseFT2(coeffs *signals.RawSignal) *signals.RawSignal {
	defer timing.Measure("InverseFT2")()

	n := coeffs.Size()
	rate := signals.WithSampleRate(coeffs.SampleRate())

	reconstructed := signals.NewRawSignal(n, rate)
	copy(reconstructed.Times, coeffs.Times)

	for k, coeff := range coeffs.Data {
		basis := signals.NewBasisSignal(1, float32(k), n, rate)
		for i := range n {
			reconstructed.Data[i] = signals.Add(reconstructed.Data[i], signals.Mul(basis.Sample(i), coeff))
		}
	}
	return reconstructed
}

// AddSignals returns the elementwise sum of a and b. Times are taken from a.
func AddSignals(a, b *signals.RawSignal) (*signals.RawSignal, error) {
	if a.Size() != b.Size() {
		return nil, fmt.Errorf("%w: %d != %d", ErrSizeMismatch, a.Size(), b.Size())
	}
	return add(a, b), nil
}

func add(a, b *signals.RawSignal) *signals.RawSignal {
	result := signals.NewRawSignal(a.Size(), signals.WithSampleRate(a.SampleRate()))
	copy(result.Times, a.Times)
	for i := range a.Data {
		result.Data[i] = signals.Add(a.Data[i], b.Data[i])
	}
	return result
}

// SignalDivide divides every value of signal by divisor in place.
func SignalDivide(signal *signals.RawSignal, divisor float32) {
	for i := range signal.Data {
		signal.Data[i].Re /= divisor
		signal.Data[i].Im /= divisor
	}
}
