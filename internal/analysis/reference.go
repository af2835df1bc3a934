// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	applog "spectra/internal/log"
	"spectra/internal/signals"
	"spectra/internal/transform"
)

// Complex128 widens a raw signal's values for the float64 libraries.
func Complex128(raw *signals.RawSignal) []complex128 {
	out := make([]complex128, raw.Size())
	for i, c := range raw.Data {
		out[i] = complex(float64(c.Re), float64(c.Im))
	}
	return out
}

// GonumSpectrum computes the spectrum of raw with gonum's complex FFT,
// scaled by 1/N to match transform.FFT.
func GonumSpectrum(raw *signals.RawSignal) ([]complex128, error) {
	n := raw.Size()
	if n == 0 {
		return nil, transform.ErrEmptySignal
	}
	coeffs := fourier.NewCmplxFFT(n).Coefficients(nil, Complex128(raw))
	scale(coeffs)
	return coeffs, nil
}

// GoDSPSpectrum computes the spectrum of raw with go-dsp, scaled by 1/N.
func GoDSPSpectrum(raw *signals.RawSignal) ([]complex128, error) {
	if raw.Size() == 0 {
		return nil, transform.ErrEmptySignal
	}
	coeffs := fft.FFT(Complex128(raw))
	scale(coeffs)
	return coeffs, nil
}

func scale(coeffs []complex128) {
	n := complex(float64(len(coeffs)), 0)
	for i := range coeffs {
		coeffs[i] /= n
	}
}

// MaxError returns the largest |a[i] - b[i]|. Slices of different length are
// infinitely far apart.
func MaxError(a, b []complex128) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	if len(a) == 0 {
		return 0
	}
	diff := make([]float64, len(a))
	for i := range a {
		diff[i] = cmplx.Abs(a[i] - b[i])
	}
	return floats.Max(diff)
}

// RealError returns the largest difference between the real parts of a and b.
func RealError(a, b *signals.RawSignal) float64 {
	if a.Size() != b.Size() {
		return math.Inf(1)
	}
	x := make([]float64, a.Size())
	y := make([]float64, b.Size())
	for i := range a.Data {
		x[i] = float64(a.Data[i].Re)
		y[i] = float64(b.Data[i].Re)
	}
	return floats.Distance(x, y, math.Inf(1))
}

// Report holds the worst-case deviations of transform.FFT from each
// reference, plus the FFT round-trip error.
type Report struct {
	Size      int     `json:"size"`
	DFT       float64 `json:"dft"`
	Gonum     float64 `json:"gonum"`
	GoDSP     float64 `json:"godsp"`
	RoundTrip float64 `json:"roundTrip"`
}

// Within reports whether every deviation is at most tolerance.
func (r Report) Within(tolerance float64) bool {
	return floats.Max([]float64{r.DFT, r.Gonum, r.GoDSP, r.RoundTrip}) <= tolerance
}

// Verify transforms raw with transform.FFT and compares the result with the
// direct DFT, gonum and go-dsp, then checks InverseFFT recovers the input.
func Verify(raw *signals.RawSignal) (Report, error) {
	fast, err := transform.FFT(raw)
	if err != nil {
		return Report{}, fmt.Errorf("verify: %w", err)
	}
	ref := Complex128(fast)

	gonum, err := GonumSpectrum(raw)
	if err != nil {
		return Report{}, fmt.Errorf("verify: gonum: %w", err)
	}
	godsp, err := GoDSPSpectrum(raw)
	if err != nil {
		return Report{}, fmt.Errorf("verify: go-dsp: %w", err)
	}
	back, err := transform.InverseFFT(fast)
	if err != nil {
		return Report{}, fmt.Errorf("verify: inverse: %w", err)
	}

	r := Report{
		Size:      raw.Size(),
		DFT:       MaxError(ref, Complex128(transform.DFT(raw))),
		Gonum:     MaxError(ref, gonum),
		GoDSP:     MaxError(ref, godsp),
		RoundTrip: RealError(raw, back),
	}
	applog.Debugf("Analysis: Verified %d samples: dft=%.2e gonum=%.2e godsp=%.2e roundtrip=%.2e",
		r.Size, r.DFT, r.Gonum, r.GoDSP, r.RoundTrip)
	return r, nil
}
