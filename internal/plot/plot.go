// SPDX-License-Identifier: MIT

/*
Package plot is the display boundary. A Plot holds the three slots a scenario
fills (the input signal, its amplitude spectrum and the reconstruction) and
samples them into Frames that transports carry to an external viewer.
*/
package plot

import (
	"spectra/internal/signals"
)

// Trace names, in slot order.
const (
	TraceSignal        = "signal"
	TraceAmplitudes    = "amplitudes"
	TraceReconstructed = "reconstructed"
)

// Trace is one sampled slot.
type Trace struct {
	Name     string     `json:"name"`
	Position [2]float32 `json:"position"`
	Real     []float32  `json:"real"`
	Imag     []float32  `json:"imag"`
}

// Frame is everything a viewer needs to draw one scenario run.
type Frame struct {
	Scenario   string  `json:"scenario"`
	SampleRate uint32  `json:"sampleRate"`
	Traces     []Trace `json:"traces"`
}

// Plot groups the top, middle and bottom display slots.
type Plot struct {
	Top    *signals.Slot
	Middle *signals.Slot
	Bottom *signals.Slot
}

// New returns a plot with three empty slots.
func New() *Plot {
	return &Plot{
		Top:    signals.NewSlot(),
		Middle: signals.NewSlot(),
		Bottom: signals.NewSlot(),
	}
}

// Frame samples each slot at every index below its Size.
func (p *Plot) Frame(scenario string, sampleRate uint32) Frame {
	return Frame{
		Scenario:   scenario,
		SampleRate: sampleRate,
		Traces: []Trace{
			sample(TraceSignal, p.Top),
			sample(TraceAmplitudes, p.Middle),
			sample(TraceReconstructed, p.Bottom),
		},
	}
}

func sample(name string, slot *signals.Slot) Trace {
	n := slot.Size()
	tr := Trace{
		Name:     name,
		Position: slot.RelativePosition,
		Real:     make([]float32, n),
		Imag:     make([]float32, n),
	}
	for i := range n {
		tr.Real[i] = slot.Evaluate(i)
		tr.Imag[i] = slot.Evaluate2(i)
	}
	return tr
}

// Trace returns the trace called name, or false.
func (f Frame) Trace(name string) (Trace, bool) {
	for _, tr := range f.Traces {
		if tr.Name == name {
			return tr, true
		}
	}
	return Trace{}, false
}

// Samples returns the total number of samples across all traces.
func (f Frame) Samples() int {
	total := 0
	for _, tr := range f.Traces {
		total += len(tr.Real)
	}
	return total
}
