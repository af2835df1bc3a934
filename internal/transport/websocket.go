// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	applog "spectra/internal/log"
	"spectra/internal/metrics"
)

// WebSocketTransport broadcasts JSON payloads to viewers connected on /ws.
// The latest payload is replayed to every viewer that connects after it was
// sent, so a viewer opened after a scenario finished still gets its frame.
// The same server answers GET /api/frame with the latest payload and, when
// stats are attached, serves /metrics.
type WebSocketTransport struct {
	stats     *metrics.Stats
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex // guards clients, latest and all writes
	latest    any
	broadcast chan any
	done      chan struct{}
	closeOnce sync.Once
	listener  net.Listener
	server    *http.Server
}

// WebSocketOption configures a WebSocketTransport.
type WebSocketOption func(*WebSocketTransport)

// WithStats records viewers and frames in stats and serves them on /metrics.
func WithStats(stats *metrics.Stats) WebSocketOption {
	return func(wst *WebSocketTransport) {
		wst.stats = stats
	}
}

// NewWebSocketTransport listens on addr and starts serving /ws. Use port 0
// to pick a free port and Addr to find it.
func NewWebSocketTransport(addr string, opts ...WebSocketOption) (*WebSocketTransport, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("websocket listen on %s: %w", addr, err)
	}

	wst := &WebSocketTransport{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // viewer pages are opened from any origin
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan any, 16),
		done:      make(chan struct{}),
		listener:  ln,
	}
	for _, opt := range opts {
		opt(wst)
	}
	wst.start()
	return wst, nil
}

// Addr returns the address the server is listening on.
func (wst *WebSocketTransport) Addr() string {
	return wst.listener.Addr().String()
}

func (wst *WebSocketTransport) setupMux() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ws", wst.handleWebSocket)
	r.HandleFunc("/api/frame", wst.handleLatest).Methods(http.MethodGet)
	if wst.stats != nil {
		r.Handle("/metrics", wst.stats.Handler())
	}
	return r
}

func (wst *WebSocketTransport) start() {
	wst.server = &http.Server{Handler: wst.setupMux()}

	go func() {
		applog.Infof("WebSocketTransport: Serving viewers on ws://%s/ws", wst.Addr())
		if err := wst.server.Serve(wst.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Errorf("WebSocketTransport: Server error: %v", err)
		}
	}()

	go wst.handleBroadcasts()
}

func (wst *WebSocketTransport) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wst.upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Warnf("WebSocketTransport: Upgrade error: %v", err)
		return
	}

	wst.clientsMu.Lock()
	if wst.latest != nil {
		if err := conn.WriteJSON(wst.latest); err != nil {
			wst.clientsMu.Unlock()
			applog.Warnf("WebSocketTransport: Replay to new client failed: %v", err)
			conn.Close()
			return
		}
	}
	wst.clients[conn] = true
	total := len(wst.clients)
	wst.clientsMu.Unlock()
	wst.setViewers(total)
	applog.Infof("WebSocketTransport: Client connected, total: %d", total)

	// Viewers never send; a read error means they went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		wst.clientsMu.Lock()
		delete(wst.clients, conn)
		total := len(wst.clients)
		wst.clientsMu.Unlock()
		conn.Close()
		wst.setViewers(total)
		applog.Infof("WebSocketTransport: Client disconnected, total: %d", total)
	}()
}

// handleLatest writes the latest payload as JSON, or 204 before the first.
func (wst *WebSocketTransport) handleLatest(w http.ResponseWriter, r *http.Request) {
	wst.clientsMu.Lock()
	latest := wst.latest
	wst.clientsMu.Unlock()

	if latest == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(latest); err != nil {
		applog.Warnf("WebSocketTransport: Writing latest payload failed: %v", err)
	}
}

func (wst *WebSocketTransport) setViewers(n int) {
	if wst.stats != nil {
		wst.stats.SetViewers(n)
	}
}

func (wst *WebSocketTransport) handleBroadcasts() {
	for {
		select {
		case data := <-wst.broadcast:
			wst.clientsMu.Lock()
			wst.latest = data
			for client := range wst.clients {
				if err := client.WriteJSON(data); err != nil {
					applog.Warnf("WebSocketTransport: Error sending to client: %v", err)
					client.Close()
					delete(wst.clients, client)
				}
			}
			total := len(wst.clients)
			wst.clientsMu.Unlock()
			wst.setViewers(total)
			if wst.stats != nil {
				wst.stats.FrameSent("websocket")
			}
		case <-wst.done:
			return
		}
	}
}

// Send queues data for broadcast. When the queue is full the payload is
// dropped.
func (wst *WebSocketTransport) Send(data any) error {
	select {
	case wst.broadcast <- data:
	default:
		applog.Warnf("WebSocketTransport: Broadcast queue full, dropping %T", data)
	}
	return nil
}

// Clients returns the number of connected viewers.
func (wst *WebSocketTransport) Clients() int {
	wst.clientsMu.Lock()
	defer wst.clientsMu.Unlock()
	return len(wst.clients)
}

// Close disconnects every viewer and shuts the server down. Later calls are
// no-ops.
func (wst *WebSocketTransport) Close() error {
	var err error
	wst.closeOnce.Do(func() {
		applog.Debugf("WebSocketTransport: Closing server")
		close(wst.done)

		wst.clientsMu.Lock()
		for client := range wst.clients {
			client.Close()
		}
		wst.clients = make(map[*websocket.Conn]bool)
		wst.clientsMu.Unlock()
		wst.setViewers(0)

		err = wst.server.Close()
	})
	return err
}

var _ Transport = (*WebSocketTransport)(nil)
