// SPDX-License-Identifier: MIT
package signals

// CombinedSignal evaluates to the sum of its components.
//
// The components are borrowed: the caller keeps them alive and must not
// mutate them while the combined signal is in use.
type CombinedSignal struct {
	base
	components []Signal
}

var _ Signal = (*CombinedSignal)(nil)

// NewCombinedSignal sums components over length seconds. The sampling rate is
// taken from the first component.
func NewCombinedSignal(length uint32, components ...Signal) *CombinedSignal {
	rate := DefaultSampleRate
	if len(components) > 0 {
		rate = components[0].SampleRate()
	}
	return &CombinedSignal{
		base:       base{length: length, tb: NewTimeBase(rate, length)},
		components: components,
	}
}

// Components returns the borrowed component list.
func (c *CombinedSignal) Components() []Signal {
	return c.components
}

// Evaluate returns the sum of all components at t.
func (c *CombinedSignal) Evaluate(t float32) Complex {
	var sum Complex
	for _, s := range c.components {
		sum = Add(sum, s.Evaluate(t))
	}
	return sum
}

// Sample returns the sum of all components at the combined signal's own
// time for index.
func (c *CombinedSignal) Sample(index int) Complex {
	return c.Evaluate(c.Time(index))
}
