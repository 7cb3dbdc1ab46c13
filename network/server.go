// Package network streams live sessions to browser clients over websockets.
// Each connection owns a private session ticking at a fixed rate.
package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/session"
)

// ErrServerFull is reported to clients beyond MaxPeers
var ErrServerFull = errors.New("server full")

// Server accepts websocket clients and runs one session per peer
type Server struct {
	cfg    *Config
	simCfg config.Config
	log    *logging.Logger

	upgrader websocket.Upgrader

	mu       sync.Mutex
	peers    map[string]*Peer
	listener net.Listener
	http     *http.Server
	running  bool
}

// NewServer creates a server; a nil cfg uses DefaultConfig
func NewServer(cfg *Config, simCfg config.Config, log *logging.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Server{
		cfg:    cfg,
		simCfg: simCfg,
		log:    log.With("network"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		peers: make(map[string]*Peer),
	}
}

// Handler returns the HTTP routes: /ws for clients and /healthz for health checks
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %d\n", s.PeerCount())
	})
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("upgrade %s: %v", r.RemoteAddr, err)
		return
	}

	if s.cfg.MaxPeers > 0 && s.PeerCount() >= s.cfg.MaxPeers {
		s.reject(conn, ErrServerFull)
		return
	}

	id := ksuid.New().String()
	collector := input.NewCollector()
	sess := session.New(s.simCfg,
		session.WithInput(collector),
		session.WithLogger(s.log.With("peer "+id)),
	)
	if err := sess.Initialize(initialCamera); err != nil {
		s.reject(conn, err)
		return
	}

	peer := newPeer(id, conn, sess, collector, s.cfg, s.log)
	s.mu.Lock()
	s.peers[id] = peer
	s.mu.Unlock()

	peer.Send(&ServerMessage{
		Type:       MsgWelcome,
		ClientID:   id,
		SessionID:  sess.ID.String(),
		ServerTime: time.Now().UnixMilli(),
	})
	s.log.Infof("peer %s connected from %s", id, peer.Addr)

	peer.start(func() {
		s.mu.Lock()
		delete(s.peers, id)
		s.mu.Unlock()
		s.log.Infof("peer %s disconnected", id)
	})
}

// reject reports err to a freshly upgraded connection and closes it
func (s *Server) reject(conn *websocket.Conn, cause error) {
	s.log.Warnf("rejecting %s: %v", conn.RemoteAddr(), cause)
	msg := ServerMessage{Type: MsgError, Error: cause.Error(), ServerTime: time.Now().UnixMilli()}
	conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := conn.WriteJSON(&msg); err == nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, cause.Error()),
			time.Now().Add(time.Second))
	}
	conn.Close()
}

// Start binds the configured address and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("server already running")
	}

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.cfg.Address)
	}
	s.listener = ln
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.running = true

	srv := s.http
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("serve: %v", err)
		}
	}()
	s.log.Infof("listening on %s", ln.Addr())
	return nil
}

// Stop closes the listener and every peer, waiting for sessions to tear down
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	srv := s.http
	peers := make([]*Peer, 0, len(s.peers))
	for _, p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	err := srv.Shutdown(ctx)
	for _, p := range peers {
		p.Close()
	}
	for _, p := range peers {
		select {
		case <-p.Done():
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for peers")
		}
	}
	return err
}

// PeerCount returns the number of connected peers
func (s *Server) PeerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Addr returns the bound address, or nil before Start
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
