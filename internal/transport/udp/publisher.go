// SPDX-License-Identifier: MIT
package udp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	applog "spectra/internal/log"
	"spectra/internal/metrics"
	"spectra/internal/plot"
	"spectra/internal/transport"
)

/*
Datagram layout (BigEndian), one per trace:

	|<- 4 B ->|<-- 8 B -->|<- 1 B ->|<- 4 B ->|<---- count * 4 B ---->|
	+---------+-----------+---------+---------+-----------------------+
	|   seq   | timestamp |  trace  |  count  |  real part samples    |
	| uint32  |  int64 ns |  uint8  | uint32  |  float32              |
	+---------+-----------+---------+---------+-----------------------+

seq increases by one per datagram. trace is the index into Frame.Traces.
*/
const (
	HeaderSize = 4 + 8 + 1 + 4

	// MaxSamples keeps a datagram within the 65507-byte UDP payload limit.
	MaxSamples = (65507 - HeaderSize) / 4
)

var (
	ErrPacketTooLarge = errors.New("udp: trace does not fit in one datagram")
	ErrShortPacket    = errors.New("udp: packet shorter than its header")
)

// Packet is a decoded datagram.
type Packet struct {
	Sequence  uint32
	Timestamp int64
	Trace     uint8
	Samples   []float32
}

// PacketSender is satisfied by *Sender.
type PacketSender interface {
	Send(data []byte) error
}

// FramePublisher packs plot frames into datagrams. Send publishes a frame
// immediately; Start republishes the latest one periodically so a viewer
// started later still receives it.
type FramePublisher struct {
	sender PacketSender
	stats  *metrics.Stats

	mu     sync.Mutex // guards everything below
	seq    uint32
	latest *plot.Frame
	packet bytes.Buffer

	ticker   *time.Ticker
	doneChan chan struct{}
	wg       sync.WaitGroup
}

// PublisherOption configures a FramePublisher.
type PublisherOption func(*FramePublisher)

// WithStats counts every published frame, republished ones included, under
// the "udp" transport label. A nil stats disables counting.
func WithStats(stats *metrics.Stats) PublisherOption {
	return func(p *FramePublisher) {
		p.stats = stats
	}
}

// NewFramePublisher creates a publisher writing through sender.
func NewFramePublisher(sender PacketSender, opts ...PublisherOption) (*FramePublisher, error) {
	if sender == nil {
		return nil, errors.New("udp: sender cannot be nil")
	}
	p := &FramePublisher{sender: sender}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Send publishes data, which must be a plot.Frame or *plot.Frame.
func (p *FramePublisher) Send(data any) error {
	var frame plot.Frame
	switch v := data.(type) {
	case plot.Frame:
		frame = v
	case *plot.Frame:
		frame = *v
	default:
		return fmt.Errorf("udp: cannot publish %T", data)
	}

	for _, tr := range frame.Traces {
		if len(tr.Real) > MaxSamples {
			return fmt.Errorf("%w: %s has %d samples, limit %d", ErrPacketTooLarge, tr.Name, len(tr.Real), MaxSamples)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.latest = &frame
	return p.publishLocked()
}

func (p *FramePublisher) publishLocked() error {
	if p.latest == nil {
		return nil
	}
	for i, tr := range p.latest.Traces {
		p.seq++
		p.packet.Reset()
		writePacket(&p.packet, Packet{
			Sequence:  p.seq,
			Timestamp: time.Now().UnixNano(),
			Trace:     uint8(i),
			Samples:   tr.Real,
		})
		if err := p.sender.Send(p.packet.Bytes()); err != nil {
			return err
		}
		applog.Debugf("UDPPublisher: Sent packet %d (%s, %d bytes)", p.seq, tr.Name, p.packet.Len())
	}
	if p.stats != nil {
		p.stats.FrameSent("udp")
	}
	return nil
}

func writePacket(buf *bytes.Buffer, pkt Packet) {
	var header [HeaderSize]byte
	binary.BigEndian.PutUint32(header[0:], pkt.Sequence)
	binary.BigEndian.PutUint64(header[4:], uint64(pkt.Timestamp))
	header[12] = pkt.Trace
	binary.BigEndian.PutUint32(header[13:], uint32(len(pkt.Samples)))
	buf.Write(header[:])
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.BigEndian, pkt.Samples)
}

// DecodePacket parses one datagram.
func DecodePacket(data []byte) (Packet, error) {
	if len(data) < HeaderSize {
		return Packet{}, fmt.Errorf("%w: %d bytes", ErrShortPacket, len(data))
	}
	pkt := Packet{
		Sequence:  binary.BigEndian.Uint32(data[0:]),
		Timestamp: int64(binary.BigEndian.Uint64(data[4:])),
		Trace:     data[12],
	}
	count := int(binary.BigEndian.Uint32(data[13:]))
	if len(data)-HeaderSize < count*4 {
		return Packet{}, fmt.Errorf("%w: want %d samples, have %d bytes", ErrShortPacket, count, len(data)-HeaderSize)
	}
	pkt.Samples = make([]float32, count)
	if err := binary.Read(bytes.NewReader(data[HeaderSize:]), binary.BigEndian, pkt.Samples); err != nil {
		return Packet{}, err
	}
	return pkt, nil
}

// Start republishes the latest frame every interval until Stop. A second
// Start while running is a no-op.
func (p *FramePublisher) Start(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
		applog.Warnf("UDPPublisher: Invalid interval, defaulting to %s", interval)
	}

	p.mu.Lock()
	if p.ticker != nil {
		p.mu.Unlock()
		applog.Warnf("UDPPublisher: Start called but already running")
		return
	}
	p.ticker = time.NewTicker(interval)
	p.doneChan = make(chan struct{})
	ticker, done := p.ticker, p.doneChan
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		applog.Infof("UDPPublisher: Republishing every %s", interval)
		for {
			select {
			case <-ticker.C:
				p.mu.Lock()
				if err := p.publishLocked(); err != nil {
					applog.Warnf("UDPPublisher: Republish failed: %v", err)
				}
				p.mu.Unlock()
			case <-done:
				return
			}
		}
	}()
}

// Stop ends periodic publishing and waits for the goroutine to exit.
func (p *FramePublisher) Stop() {
	p.mu.Lock()
	if p.ticker == nil {
		p.mu.Unlock()
		return
	}
	p.ticker.Stop()
	p.ticker = nil
	close(p.doneChan)
	p.mu.Unlock()

	p.wg.Wait()
	applog.Debugf("UDPPublisher: Stopped")
}

// Close stops periodic publishing. It closes the sender when it is an
// io.Closer.
func (p *FramePublisher) Close() error {
	p.Stop()
	if c, ok := p.sender.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

var _ transport.Transport = (*FramePublisher)(nil)
