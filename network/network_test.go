package network

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-racer/config"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.TickRate = 120
	cfg.SnapshotEvery = 1
	cfg.MaxPeers = 1
	return cfg
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// readUntil skips messages until one of the given type arrives
func readUntil(t *testing.T, conn *websocket.Conn, typ string, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	for i := 0; i < 2000; i++ {
		msg := readMessage(t, conn)
		if msg.Type == typ && (match == nil || match(msg)) {
			return msg
		}
	}
	t.Fatalf("no %s message", typ)
	return ServerMessage{}
}

func TestSessionOverWebsocket(t *testing.T) {
	s := NewServer(testConfig(), config.Default(), nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)

	welcome := readMessage(t, conn)
	require.Equal(t, MsgWelcome, welcome.Type)
	assert.NotEmpty(t, welcome.ClientID)
	assert.NotEmpty(t, welcome.SessionID)
	assert.Equal(t, 1, s.PeerCount())

	state := readUntil(t, conn, MsgState, nil)
	require.NotNil(t, state.Frame)
	assert.True(t, state.Frame.Player.Present)
	assert.Len(t, state.Frame.Segments, 10)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgInput, Input: &InputMessage{Forward: 1}}))
	moving := readUntil(t, conn, MsgState, func(m ServerMessage) bool {
		return m.Frame != nil && m.Frame.Player.Speed > 5
	})
	assert.Equal(t, "forward", moving.Frame.Player.State)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgHeartbeat, SentAt: 1234}))
	hb := readUntil(t, conn, MsgHeartbeat, nil)
	assert.Equal(t, int64(1234), hb.ClientTime)

	// Reset replays the session from a standstill
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgInput, Input: &InputMessage{}}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgReset}))
	prev := moving.Frame.Frame
	restarted := readUntil(t, conn, MsgState, func(m ServerMessage) bool {
		if m.Frame == nil {
			return false
		}
		back := m.Frame.Frame < prev
		prev = m.Frame.Frame
		return back
	})
	assert.Less(t, restarted.Frame.Player.Speed, 1.0)

	conn.Close()
	assert.Eventually(t, func() bool { return s.PeerCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestServerRejectsBeyondMaxPeers(t *testing.T) {
	s := NewServer(testConfig(), config.Default(), nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	require.Equal(t, MsgWelcome, readMessage(t, first).Type)

	second := dial(t, srv)
	defer second.Close()
	msg := readMessage(t, second)
	assert.Equal(t, MsgError, msg.Type)
	assert.Equal(t, ErrServerFull.Error(), msg.Error)
	assert.Equal(t, 1, s.PeerCount())
}

func TestMalformedMessagesAreIgnored(t *testing.T) {
	s := NewServer(testConfig(), config.Default(), nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	require.Equal(t, MsgWelcome, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "bogus"}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgInput}))

	state := readUntil(t, conn, MsgState, nil)
	assert.NotNil(t, state.Frame)
	assert.Equal(t, 1, s.PeerCount())
}

func TestStartStop(t *testing.T) {
	cfg := testConfig()
	cfg.Address = "127.0.0.1:0"
	s := NewServer(cfg, config.Default(), nil)
	assert.Nil(t, s.Addr())

	require.NoError(t, s.Start())
	require.Error(t, s.Start())
	addr := s.Addr()
	require.NotNil(t, addr)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr.String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, MsgWelcome, readMessage(t, conn).Type)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, 0, s.PeerCount())
	require.NoError(t, s.Stop(ctx))
}
