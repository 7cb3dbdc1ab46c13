package network

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/session"
	"github.com/lixenwraith/vi-racer/vmath"
)

// initialCamera places the camera behind and above the spawn point
var initialCamera = vmath.Vec3F{Y: 6, Z: 12}

// Peer is one browser connection driving its own session
// The session is touched only by simLoop; readLoop talks to it through the input collector
type Peer struct {
	ID       string
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn  *websocket.Conn
	sess  *session.Session
	input *input.Collector
	cfg   *Config
	log   *logging.Logger

	resetRequested atomic.Bool

	// Send queue of encoded frames
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

func newPeer(id string, conn *websocket.Conn, sess *session.Session, in *input.Collector, cfg *Config, log *logging.Logger) *Peer {
	p := &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		sess:    sess,
		input:   in,
		cfg:     cfg,
		log:     log,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// start launches the peer goroutines; onExit runs once the simulation loop has stopped
func (p *Peer) start(onExit func()) {
	onPanic := func(r any, stack []byte) {
		p.log.Errorf("peer %s panic: %v\n%s", p.ID, r, stack)
		p.Close()
	}
	core.GoRecover(p.readLoop, onPanic)
	core.GoRecover(p.writeLoop, onPanic)
	core.GoRecover(func() {
		defer close(p.done)
		defer onExit()
		p.simLoop()
	}, onPanic)
}

// Send queues a message for transmission
// Returns false if the peer is closed or its queue is full; state frames are droppable
func (p *Peer) Send(msg *ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		p.log.Warnf("peer %s: encode %s: %v", p.ID, msg.Type, err)
		return false
	}
	select {
	case <-p.closeCh:
		return false
	default:
	}
	select {
	case p.sendCh <- data:
		return true
	default:
		return false
	}
}

// Close initiates shutdown of all peer goroutines
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

// Done is closed after the session has been torn down
func (p *Peer) Done() <-chan struct{} {
	return p.done
}

// readLoop decodes client messages until the connection fails
func (p *Peer) readLoop() {
	defer p.Close()

	p.conn.SetReadLimit(p.cfg.MaxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(p.cfg.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.cfg.PongTimeout))
	})

	for {
		_, payload, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(p.cfg.PongTimeout))

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			p.log.Debugf("peer %s: discarding malformed message: %v", p.ID, err)
			continue
		}

		switch msg.Type {
		case MsgInput:
			if msg.Input == nil {
				continue
			}
			p.input.SetState(msg.Input.component())
			if msg.Input.MouseDX != 0 || msg.Input.MouseDY != 0 {
				p.input.AddMouseDelta(msg.Input.MouseDX, msg.Input.MouseDY)
			}
		case MsgReset:
			p.resetRequested.Store(true)
		case MsgHeartbeat:
			p.Send(&ServerMessage{
				Type:       MsgHeartbeat,
				ServerTime: time.Now().UnixMilli(),
				ClientTime: msg.SentAt,
			})
		default:
			p.log.Debugf("peer %s: unknown message type %q", p.ID, msg.Type)
		}
	}
}

// writeLoop sends queued frames and keeps the connection alive with pings
func (p *Peer) writeLoop() {
	defer p.Close()

	ping := time.NewTicker(p.cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-p.closeCh:
			deadline := time.Now().Add(time.Second)
			p.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ping.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(p.cfg.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

// simLoop owns the session: fixed-rate ticks, periodic snapshots, teardown on exit
func (p *Peer) simLoop() {
	defer p.sess.Teardown()

	interval := p.cfg.tickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	every := p.cfg.SnapshotEvery
	if every < 1 {
		every = 1
	}
	dt := interval.Seconds()

	p.sendState()
	for tick := 1; ; tick++ {
		select {
		case <-p.closeCh:
			return
		case <-ticker.C:
		}

		if p.resetRequested.Swap(false) {
			p.sess.Teardown()
			p.input.Reset()
			if err := p.sess.Initialize(initialCamera); err != nil {
				p.Send(&ServerMessage{Type: MsgError, Error: err.Error(), ServerTime: time.Now().UnixMilli()})
				return
			}
		}

		p.sess.Tick(dt)
		if tick%every == 0 {
			p.sendState()
		}
	}
}

func (p *Peer) sendState() {
	frame := p.sess.Snapshot()
	p.Send(&ServerMessage{
		Type:       MsgState,
		ServerTime: time.Now().UnixMilli(),
		Frame:      &frame,
	})
}
