// SPDX-License-Identifier: MIT
package signals

import "slices"

// Slot is the display-side aggregate a renderer samples from. It owns the
// signals added to it and evaluates as their sum.
type Slot struct {
	// RelativePosition is the slot's placement hint for the renderer.
	RelativePosition [2]float32

	signals []Signal
	length  uint32 // max over signals of Length()*SampleRate()
}

// NewSlot returns an empty slot at the default position.
func NewSlot() *Slot {
	return &Slot{RelativePosition: [2]float32{0, 5}}
}

// AddSignal transfers ownership of signal to the slot. The caller must not
// use or mutate it afterwards.
func (s *Slot) AddSignal(signal Signal) {
	s.length = max(s.length, signal.Length()*signal.SampleRate())
	s.signals = append(s.signals, signal)
}

// Size returns the largest length*rate across contained signals.
func (s *Slot) Size() int {
	return int(s.length)
}

// Count returns the number of contained signals.
func (s *Slot) Count() int {
	return len(s.signals)
}

// Signals returns the contained signals in insertion order.
func (s *Slot) Signals() []Signal {
	return slices.Clone(s.signals)
}

// Evaluate returns the summed real part at index. Signals shorter than index
// contribute nothing.
func (s *Slot) Evaluate(index int) float32 {
	var v float32
	for _, sig := range s.signals {
		if sig.Size() > index {
			v += sig.Sample(index).Re
		}
	}
	return v
}

// Evaluate2 returns the summed imaginary part at index.
func (s *Slot) Evaluate2(index int) float32 {
	var v float32
	for _, sig := range s.signals {
		if sig.Size() > index {
			v += sig.Sample(index).Im
		}
	}
	return v
}
