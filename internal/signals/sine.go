// SPDX-License-Identifier: MIT
package signals

// SineSignal is amplitude*sin(2*pi*frequency*t + phase) on [0, length]
// and zero afterwards. The imaginary part is always zero.
type SineSignal struct {
	base
	amplitude float32
	frequency float32 // Hz
	phase     float32 // radians
}

var _ Signal = (*SineSignal)(nil)

// NewSineSignal creates a sine wave lasting length seconds on a linear time base.
func NewSineSignal(amplitude, frequency, phase float32, length uint32, opts ...Option) *SineSignal {
	o := applyOptions(opts)
	return &SineSignal{
		base:      base{length: length, tb: NewTimeBase(o.rate, length)},
		amplitude: amplitude,
		frequency: frequency,
		phase:     phase,
	}
}

// Evaluate returns the sine value at t.
func (s *SineSignal) Evaluate(t float32) Complex {
	if t > float32(s.length) {
		return Complex{}
	}
	return Complex{Re: s.amplitude * sinf(angle(s.frequency, t, s.phase))}
}

// Sample returns the sine value at sample index.
func (s *SineSignal) Sample(index int) Complex {
	return s.Evaluate(s.Time(index))
}

// ComplexSineSignal is the complex sinusoid used as a DFT/IDFT basis:
// real |A|*cos(2*pi*f*t + phase), imaginary A*sin(2*pi*f*t + phase).
// A negative amplitude therefore yields e^(-i*theta), the forward-transform
// kernel; a positive one yields e^(+i*theta).
//
// It always runs on a normalized time base.
type ComplexSineSignal struct {
	base
	amplitude float32
	frequency float32
	phase     float32
}

var _ Signal = (*ComplexSineSignal)(nil)

// NewComplexSineSignal creates a complex sinusoid lasting length seconds.
func NewComplexSineSignal(amplitude, frequency, phase float32, length uint32, opts ...Option) *ComplexSineSignal {
	o := applyOptions(opts)
	return &ComplexSineSignal{
		base:      base{length: length, tb: NewNormalizedTimeBase(o.rate, length)},
		amplitude: amplitude,
		frequency: frequency,
		phase:     phase,
	}
}

// NewBasisSignal creates a zero-phase complex sinusoid over exactly size
// samples, so that sample i of the basis lines up with sample i of a buffer
// of that size.
func NewBasisSignal(amplitude, frequency float32, size int, opts ...Option) *ComplexSineSignal {
	o := applyOptions(opts)
	tb := NewBasisTimeBase(o.rate, size)
	return &ComplexSineSignal{
		base:      base{length: tb.Seconds(), tb: tb},
		amplitude: amplitude,
		frequency: frequency,
	}
}

// Evaluate returns the complex value at t.
func (s *ComplexSineSignal) Evaluate(t float32) Complex {
	a := angle(s.frequency, t, s.phase)
	return Complex{
		Re: absf(s.amplitude) * cosf(a),
		Im: s.amplitude * sinf(a),
	}
}

// Sample returns the complex value at sample index.
func (s *ComplexSineSignal) Sample(index int) Complex {
	return s.Evaluate(s.Time(index))
}

// ToRawSignal materializes the sinusoid over its time base.
func (s *ComplexSineSignal) ToRawSignal() *RawSignal {
	return s.ToRawSignalAndMultiply(Complex{Re: 1})
}

// ToRawSignalAndMultiply materializes the sinusoid scaled by multiplier.
func (s *ComplexSineSignal) ToRawSignalAndMultiply(multiplier Complex) *RawSignal {
	n := s.Size()
	raw := NewRawSignal(n, WithSampleRate(s.SampleRate()))
	for i := range n {
		t := s.Time(i)
		raw.Times[i] = t
		raw.Data[i] = Mul(s.Evaluate(t), multiplier)
	}
	return raw
}

// angle computes 2*pi*f*t + phase in float32, rounding the product before
// adding the phase.
func angle(frequency, t, phase float32) float32 {
	return float32(2*Pi*frequency*t) + phase
}
