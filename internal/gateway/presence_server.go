package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/hatchpad/courier/internal/config"
	"github.com/hatchpad/courier/pkg/jwt"
	"github.com/hertz-contrib/websocket"
	"github.com/mbeoliero/kit/log"
	"github.com/redis/go-redis/v9"
)

// PresenceServer upgrades heartbeat WebSocket connections and drives the
// presence tracker from their lifecycle: connected means online, last
// connection closed means offline. No application frames are pushed over
// these sockets; they exist purely to signal liveness.
type PresenceServer struct {
	cfg        *config.Config
	tracker    *Tracker
	connNum    atomic.Int64
	maxConnNum int64
}

// NewPresenceServer creates a new PresenceServer
func NewPresenceServer(cfg *config.Config, rdb *redis.Client) *PresenceServer {
	return &PresenceServer{
		cfg:        cfg,
		tracker:    NewTracker(rdb, cfg.Presence.OnlineTTL),
		maxConnNum: cfg.Presence.MaxConnNum,
	}
}

// IsOnline reports whether the user currently holds a heartbeat connection
func (s *PresenceServer) IsOnline(ctx context.Context, userId int64) bool {
	return s.tracker.IsOnline(ctx, userId)
}

// Tracker returns the underlying presence tracker
func (s *PresenceServer) Tracker() *Tracker {
	return s.tracker
}

// TokenValidator verifies heartbeat tokens before the upgrade
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// HandleConnection authenticates and upgrades a heartbeat connection, then
// blocks serving it until the client disconnects
func (s *PresenceServer) HandleConnection(ctx context.Context, c *app.RequestContext, upgrader *websocket.HertzUpgrader, validator TokenValidator) {
	if s.connNum.Load() >= s.maxConnNum {
		c.String(503, "connection limit exceeded")
		return
	}

	token := c.Query("token")
	if token == "" {
		c.String(400, "missing token")
		return
	}

	claims, err := validator.ValidateToken(ctx, token)
	if err != nil {
		log.CtxDebug(ctx, "presence token validation failed: %v", err)
		c.String(401, "unauthorized")
		return
	}

	err = upgrader.Upgrade(c, func(conn *websocket.Conn) {
		s.serve(ctx, conn, claims.UserId)
	})
	if err != nil {
		log.CtxWarn(ctx, "websocket upgrade failed: %v", err)
	}
}

// serve runs the heartbeat loop for one connection
func (s *PresenceServer) serve(ctx context.Context, conn *websocket.Conn, userId int64) {
	connId := uuid.New().String()

	s.connNum.Add(1)
	s.tracker.Register(ctx, userId, connId)
	log.CtxInfo(ctx, "presence connected: user_id=%d, conn_id=%s", userId, connId)

	defer func() {
		offline := s.tracker.Unregister(ctx, userId, connId)
		s.connNum.Add(-1)
		log.CtxInfo(ctx, "presence disconnected: user_id=%d, conn_id=%s, offline=%v", userId, connId, offline)
		conn.Close()
	}()

	pongWait := s.cfg.Presence.PongWait
	conn.SetReadLimit(s.cfg.Presence.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		s.tracker.Refresh(ctx, userId)
		return nil
	})

	var writeMu sync.Mutex
	stop := make(chan struct{})
	defer close(stop)

	// Ping loop keeps the read deadline honest and the redis TTL fresh
	go func() {
		ticker := time.NewTicker(s.cfg.Presence.PingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				writeMu.Lock()
				conn.SetWriteDeadline(time.Now().Add(s.cfg.Presence.WriteWait))
				err := conn.WriteMessage(websocket.PingMessage, nil)
				writeMu.Unlock()
				if err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		// Clients may also send frames as heartbeats; any readable frame
		// refreshes presence
		if _, _, err := conn.ReadMessage(); err != nil {
			log.CtxDebug(ctx, "presence read closed: user_id=%d, error=%v", userId, err)
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		s.tracker.Refresh(ctx, userId)
	}
}
