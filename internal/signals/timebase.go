// SPDX-License-Identifier: MIT
package signals

import "spectra/pkg/bitint"

// DefaultSampleRate is used when a signal is built without WithSampleRate.
const DefaultSampleRate uint32 = 1000

// TimeBase maps a sample index to a time value for a given sampling rate and
// duration. The sample count is the next power of two >= rate*seconds+1 and is
// fixed at construction.
//
// A linear time base returns index/rate. A normalized one returns index/size,
// covering [0, 1) over the whole buffer; basis functions correlated against a
// signal must use it or the frequency bins will not line up.
type TimeBase struct {
	rate       uint32
	seconds    uint32
	size       int
	normalized bool
}

// NewTimeBase returns a linear time base.
func NewTimeBase(rate, seconds uint32) TimeBase {
	if rate == 0 {
		rate = DefaultSampleRate
	}
	return TimeBase{
		rate:    rate,
		seconds: seconds,
		size:    bitint.NextPowerOfTwo(int(rate)*int(seconds) + 1),
	}
}

// NewNormalizedTimeBase returns a time base whose times are index/size.
func NewNormalizedTimeBase(rate, seconds uint32) TimeBase {
	tb := NewTimeBase(rate, seconds)
	tb.normalized = true
	return tb
}

// NewBasisTimeBase returns a normalized time base over exactly size samples.
// Used when the sample count is dictated by an existing buffer rather than a
// duration.
func NewBasisTimeBase(rate uint32, size int) TimeBase {
	if rate == 0 {
		rate = DefaultSampleRate
	}
	return TimeBase{
		rate:       rate,
		seconds:    uint32(size) / rate,
		size:       size,
		normalized: true,
	}
}

// SampleRate returns the sampling rate in Hz.
func (tb TimeBase) SampleRate() uint32 { return tb.rate }

// Seconds returns the duration the time base was built for.
func (tb TimeBase) Seconds() uint32 { return tb.seconds }

// Size returns the sample count.
func (tb TimeBase) Size() int { return tb.size }

// Normalized reports whether Time divides by the sample count.
func (tb TimeBase) Normalized() bool { return tb.normalized }

// Time returns the time value of sample index.
func (tb TimeBase) Time(index int) float32 {
	if tb.normalized {
		return float32(index) / float32(tb.size)
	}
	return float32(index) / float32(tb.rate)
}
