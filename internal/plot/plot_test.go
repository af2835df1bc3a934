// SPDX-License-Identifier: MIT
package plot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectra/internal/signals"
)

func TestFrame(t *testing.T) {
	rate := signals.WithSampleRate(8)

	raw := signals.NewRawSignal(16, rate)
	for i := range raw.Data {
		raw.Data[i] = signals.Complex{Re: float32(i), Im: -float32(i)}
	}

	p := New()
	p.Top.AddSignal(raw)
	p.Middle.AddSignal(signals.NewSineSignal(1, 1, 0, 1, rate))

	f := p.Frame("unit", 8)
	assert.Equal(t, "unit", f.Scenario)
	assert.Equal(t, uint32(8), f.SampleRate)
	require.Len(t, f.Traces, 3)

	top, ok := f.Trace(TraceSignal)
	require.True(t, ok)
	// 16 samples at 8 Hz is 2 s, so the slot spans 16 indices.
	require.Len(t, top.Real, 16)
	assert.Equal(t, float32(5), top.Real[5])
	assert.Equal(t, float32(-5), top.Imag[5])
	assert.Equal(t, [2]float32{0, 5}, top.Position)

	middle, ok := f.Trace(TraceAmplitudes)
	require.True(t, ok)
	require.Len(t, middle.Real, 8)
	assert.InDelta(t, 1, middle.Real[2], 1e-6)

	bottom, ok := f.Trace(TraceReconstructed)
	require.True(t, ok)
	assert.Empty(t, bottom.Real)

	assert.Equal(t, 24, f.Samples())

	_, ok = f.Trace("missing")
	assert.False(t, ok)
}

func TestFrameJSON(t *testing.T) {
	p := New()
	p.Top.AddSignal(signals.NewSineSignal(1, 1, 0, 1, signals.WithSampleRate(4)))

	data, err := json.Marshal(p.Frame("json", 4))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "json", decoded["scenario"])
	assert.EqualValues(t, 4, decoded["sampleRate"])

	traces, ok := decoded["traces"].([]any)
	require.True(t, ok)
	require.Len(t, traces, 3)
	assert.Equal(t, TraceSignal, traces[0].(map[string]any)["name"])
}
