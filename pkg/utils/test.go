// SPDX-License-Identifier: MIT

// Package utils holds helpers shared by tests across packages.
package utils

import (
	"errors"
	"math"
	"sync"
)

var ErrMockClosed = errors.New("mock transport closed")

// MockTransport records every payload instead of transmitting it.
type MockTransport struct {
	mu       sync.Mutex
	payloads []any
	closed   bool

	// Err, when set, is returned by every Send.
	Err error
}

// Send records data.
func (m *MockTransport) Send(data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrMockClosed
	}
	if m.Err != nil {
		return m.Err
	}
	m.payloads = append(m.payloads, data)
	return nil
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Payloads returns everything sent so far.
func (m *MockTransport) Payloads() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.payloads))
	copy(out, m.payloads)
	return out
}

// Last returns the most recent payload, or nil.
func (m *MockTransport) Last() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.payloads) == 0 {
		return nil
	}
	return m.payloads[len(m.payloads)-1]
}

// Closed reports whether Close was called.
func (m *MockTransport) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// GenerateSineWave returns size samples of amplitude*sin(2*pi*frequency*t)
// taken at sampleRate.
func GenerateSineWave(size int, sampleRate, frequency, amplitude float64) []float32 {
	buffer := make([]float32, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = float32(amplitude * math.Sin(2*math.Pi*frequency*t))
	}
	return buffer
}

// FindPeakBin returns the index of the largest value in [startBin, endBin].
func FindPeakBin(magnitudes []float32, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}
