// SPDX-License-Identifier: MIT
package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "spectra/internal/log"
	"spectra/internal/metrics"
	"spectra/internal/plot"
	"spectra/pkg/utils"
)

func testFrame() plot.Frame {
	return plot.Frame{
		Scenario:   "unit",
		SampleRate: 4,
		Traces: []plot.Trace{
			{Name: plot.TraceSignal, Real: []float32{1, 2}, Imag: []float32{0, 0}},
			{Name: plot.TraceAmplitudes, Real: []float32{3}, Imag: []float32{0}},
		},
	}
}

func TestMulti(t *testing.T) {
	a := &utils.MockTransport{}
	boom := errors.New("boom")
	b := &utils.MockTransport{Err: boom}
	c := &utils.MockTransport{}

	m := Multi{a, b, c}
	err := m.Send("payload")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "payload", a.Last())
	assert.Equal(t, "payload", c.Last(), "a failing transport must not stop the others")

	require.NoError(t, m.Close())
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.True(t, c.Closed())

	assert.NoError(t, Multi(nil).Send(1))
}

func TestLoggingTransport(t *testing.T) {
	var buf bytes.Buffer
	applog.SetOutput(&buf)
	prev := applog.GetLevel()
	applog.SetLevel(applog.LevelDebug)
	t.Cleanup(func() {
		applog.SetOutput(os.Stderr)
		applog.SetLevel(prev)
	})

	lt := NewLoggingTransport()
	require.NoError(t, lt.Send(testFrame()))
	require.NoError(t, lt.Send(42))
	require.NoError(t, lt.Close())

	out := buf.String()
	assert.Contains(t, out, `Frame "unit" at 4 Hz, 2 traces, 3 samples`)
	assert.Contains(t, out, "Received int")
}

func dial(t *testing.T, wst *WebSocketTransport) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+wst.Addr()+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) plot.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f plot.Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestWebSocketBroadcast(t *testing.T) {
	wst, err := NewWebSocketTransport("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { wst.Close() })

	conn := dial(t, wst)
	require.Eventually(t, func() bool { return wst.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, wst.Send(testFrame()))
	assert.Equal(t, testFrame(), readFrame(t, conn))
}

func TestWebSocketReplaysLatest(t *testing.T) {
	wst, err := NewWebSocketTransport("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { wst.Close() })

	first := testFrame()
	first.Scenario = "first"
	require.NoError(t, wst.Send(first))
	require.NoError(t, wst.Send(testFrame()))

	// Wait for the broadcaster to record the second frame.
	require.Eventually(t, func() bool {
		wst.clientsMu.Lock()
		defer wst.clientsMu.Unlock()
		f, ok := wst.latest.(plot.Frame)
		return ok && f.Scenario == "unit"
	}, 5*time.Second, 10*time.Millisecond)

	conn := dial(t, wst)
	assert.Equal(t, testFrame(), readFrame(t, conn))
}

func TestWebSocketClose(t *testing.T) {
	wst, err := NewWebSocketTransport("127.0.0.1:0")
	require.NoError(t, err)

	conn := dial(t, wst)
	require.Eventually(t, func() bool { return wst.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, wst.Close())
	assert.NoError(t, wst.Close(), "second Close is a no-op")
	assert.Equal(t, 0, wst.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketListenError(t *testing.T) {
	_, err := NewWebSocketTransport("256.0.0.1:bad")
	assert.Error(t, err)
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestWebSocketLatestFrameEndpoint(t *testing.T) {
	wst, err := NewWebSocketTransport("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { wst.Close() })

	code, _ := get(t, "http://"+wst.Addr()+"/api/frame")
	assert.Equal(t, http.StatusNoContent, code)

	require.NoError(t, wst.Send(testFrame()))
	var frame plot.Frame
	require.Eventually(t, func() bool {
		code, body := get(t, "http://"+wst.Addr()+"/api/frame")
		return code == http.StatusOK && json.Unmarshal(body, &frame) == nil
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, testFrame(), frame)

	code, _ = get(t, "http://"+wst.Addr()+"/metrics")
	assert.Equal(t, http.StatusNotFound, code, "no /metrics without stats")
}

func TestWebSocketMetrics(t *testing.T) {
	wst, err := NewWebSocketTransport("127.0.0.1:0", WithStats(metrics.New()))
	require.NoError(t, err)
	t.Cleanup(func() { wst.Close() })

	dial(t, wst)
	require.Eventually(t, func() bool { return wst.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, wst.Send(testFrame()))

	require.Eventually(t, func() bool {
		code, body := get(t, "http://"+wst.Addr()+"/metrics")
		return code == http.StatusOK &&
			bytes.Contains(body, []byte(`spectra_frames_published_total{transport="websocket"} 1`)) &&
			bytes.Contains(body, []byte("spectra_websocket_viewers 1"))
	}, 5*time.Second, 10*time.Millisecond)
}
