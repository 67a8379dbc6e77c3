package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	presencePingPeriod = 25 * time.Second
	presenceWriteWait  = 10 * time.Second
)

// PresenceConn is a live presence connection. The user counts as online for
// as long as the connection is held open and heartbeats keep flowing.
type PresenceConn struct {
	conn   *websocket.Conn
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// Connect opens a presence connection using the client's current token
func (c *Client) Connect(ctx context.Context) (*PresenceConn, error) {
	if c.token == "" {
		return nil, fmt.Errorf("presence connect requires a token, login first")
	}

	wsURL, err := presenceURL(c.baseURL, c.token)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("dial presence endpoint: %w", err)
	}

	pc := &PresenceConn{
		conn: conn,
		done: make(chan struct{}),
	}

	go pc.readLoop()
	go pc.pingLoop()

	return pc, nil
}

// presenceURL derives the ws endpoint from the API base URL
func presenceURL(baseURL, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}

// readLoop drains control frames until the connection drops
func (pc *PresenceConn) readLoop() {
	defer close(pc.done)
	for {
		if _, _, err := pc.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pingLoop keeps the presence session alive
func (pc *PresenceConn) pingLoop() {
	ticker := time.NewTicker(presencePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pc.mu.Lock()
			err := pc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(presenceWriteWait))
			pc.mu.Unlock()
			if err != nil {
				return
			}
		case <-pc.done:
			return
		}
	}
}

// Done is closed when the connection has dropped
func (pc *PresenceConn) Done() <-chan struct{} {
	return pc.done
}

// Close ends the presence session, marking the user offline once no other
// connections remain
func (pc *PresenceConn) Close() error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.closed {
		return nil
	}
	pc.closed = true

	deadline := time.Now().Add(presenceWriteWait)
	_ = pc.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return pc.conn.Close()
}
