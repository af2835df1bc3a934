// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectra/internal/config"
	"spectra/internal/playground"
	"spectra/internal/transport/udp"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Signal.SampleRate = 64
	return &cfg
}

func TestListScenarios(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listScenarios(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(playground.Names())+1)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	for i, name := range playground.Names() {
		assert.True(t, strings.HasPrefix(lines[i+1], name+" "), "line %q", lines[i+1])
	}
}

func TestVerify(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, verify(testConfig(), &out))

	for _, label := range []string{"samples", "vs DFT", "vs gonum", "vs go-dsp", "round trip"} {
		assert.Contains(t, out.String(), label)
	}
}

func TestRunExports(t *testing.T) {
	cfg := testConfig()
	cfg.Export.Enabled = true
	cfg.Export.OutputDir = t.TempDir()

	waited := false
	require.NoError(t, run(cfg, func() { waited = true }))
	assert.False(t, waited, "a run without live transports returns immediately")

	files, err := filepath.Glob(filepath.Join(cfg.Export.OutputDir, "fft-*.wav"))
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestRunUnknownScenario(t *testing.T) {
	cfg := testConfig()
	cfg.Signal.Scenario = "missing"
	assert.ErrorIs(t, run(cfg, func() {}), playground.ErrUnknownScenario)
}

func TestRunPublishesOverUDP(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	cfg := testConfig()
	cfg.Transport.UDPEnabled = true
	cfg.Transport.UDPTargetAddress = conn.LocalAddr().String()
	cfg.Transport.UDPSendInterval = 10 * time.Millisecond

	// One frame is three datagrams; a fourth proves republishing.
	var packets []udp.Packet
	wait := func() {
		buf := make([]byte, 65535)
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		for range 4 {
			n, _, err := conn.ReadFrom(buf)
			require.NoError(t, err)
			pkt, err := udp.DecodePacket(buf[:n])
			require.NoError(t, err)
			packets = append(packets, pkt)
		}
	}
	require.NoError(t, run(cfg, wait))

	require.Len(t, packets, 4)
	assert.NotEmpty(t, packets[0].Samples)
	assert.Greater(t, packets[3].Sequence, packets[0].Sequence)
}

func TestRunBadUDPAddress(t *testing.T) {
	cfg := testConfig()
	cfg.Transport.UDPEnabled = true
	cfg.Transport.UDPTargetAddress = "not-an-address"
	assert.Error(t, run(cfg, func() {}))
}
