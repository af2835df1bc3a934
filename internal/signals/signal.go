// SPDX-License-Identifier: MIT

/*
Package signals holds the numeric signal model: complex values, time bases,
analytic signals (sine, complex sine, sums of signals) and materialized raw
signals, plus the display slots a renderer reads from.

A Signal can be evaluated either at a continuous time or at a sample index.
Analytic signals map the index through their TimeBase; a RawSignal is only
meaningful by index and evaluates to zero at any time.
*/
package signals

// Signal is a time- or frequency-domain function.
type Signal interface {
	// Length returns the duration in whole seconds.
	Length() uint32
	// SampleRate returns the sampling rate in Hz.
	SampleRate() uint32
	// Size returns the number of samples.
	Size() int
	// Time returns the time value of sample index.
	Time(index int) float32
	// Evaluate returns the value at time t.
	Evaluate(t float32) Complex
	// Sample returns the value at sample index.
	Sample(index int) Complex
}

// Option configures signal construction.
type Option func(*options)

type options struct {
	rate uint32
}

// WithSampleRate overrides DefaultSampleRate.
func WithSampleRate(rate uint32) Option {
	return func(o *options) {
		if rate > 0 {
			o.rate = rate
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{rate: DefaultSampleRate}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base carries the length and time base shared by analytic signals.
type base struct {
	length uint32
	tb     TimeBase
}

func (b base) Length() uint32         { return b.length }
func (b base) SampleRate() uint32     { return b.tb.SampleRate() }
func (b base) Size() int              { return b.tb.Size() }
func (b base) Time(index int) float32 { return b.tb.Time(index) }

// TimeBase returns the signal's time base.
func (b base) TimeBase() TimeBase { return b.tb }
