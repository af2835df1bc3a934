// SPDX-License-Identifier: MIT
package signals

// RawSignal is a materialized signal: parallel time and value sequences.
//
// Whoever holds a *RawSignal owns its buffers. Every function producing one
// allocates fresh slices, so two owners never share a buffer.
type RawSignal struct {
	Times []float32
	Data  []Complex
	rate  uint32
}

var _ Signal = (*RawSignal)(nil)

// NewRawSignal allocates a zeroed raw signal of size samples.
func NewRawSignal(size int, opts ...Option) *RawSignal {
	o := applyOptions(opts)
	return &RawSignal{
		Times: make([]float32, size),
		Data:  make([]Complex, size),
		rate:  o.rate,
	}
}

// Length returns Size()/SampleRate() in whole seconds.
func (r *RawSignal) Length() uint32 {
	if r.rate == 0 {
		return 0
	}
	return uint32(len(r.Data)) / r.rate
}

// SampleRate returns the sampling rate in Hz.
func (r *RawSignal) SampleRate() uint32 { return r.rate }

// Size returns the number of samples.
func (r *RawSignal) Size() int { return len(r.Data) }

// Time returns the stored time of sample index.
func (r *RawSignal) Time(index int) float32 { return r.Times[index] }

// Evaluate is undefined for raw signals and returns zero.
func (r *RawSignal) Evaluate(float32) Complex { return Complex{} }

// Sample returns the stored value at index.
func (r *RawSignal) Sample(index int) Complex { return r.Data[index] }

// Clone returns a deep copy with its own buffers.
func (r *RawSignal) Clone() *RawSignal {
	c := &RawSignal{
		Times: make([]float32, len(r.Times)),
		Data:  make([]Complex, len(r.Data)),
		rate:  r.rate,
	}
	copy(c.Times, r.Times)
	copy(c.Data, r.Data)
	return c
}

// ToRawSignal materializes the sum of signals into one raw signal.
//
// The sample count is the largest Size() among the inputs and the samples are
// spread evenly over the longest Length(), so sample i is taken at
// i*length/count seconds. The sampling rate comes from the first input.
func ToRawSignal(signals ...Signal) *RawSignal {
	var (
		seconds uint32
		count   int
		rate    = DefaultSampleRate
	)
	for i, s := range signals {
		if i == 0 {
			rate = s.SampleRate()
		}
		seconds = max(seconds, s.Length())
		count = max(count, s.Size())
	}

	raw := NewRawSignal(count, WithSampleRate(rate))
	if count == 0 {
		return raw
	}

	step := float32(seconds) / float32(count)
	for i := range count {
		t := step * float32(i)
		raw.Times[i] = t

		var sum Complex
		for _, s := range signals {
			sum = Add(sum, s.Evaluate(t))
		}
		raw.Data[i] = sum
	}
	return raw
}
