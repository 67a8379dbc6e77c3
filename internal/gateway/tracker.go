package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hatchpad/courier/pkg/constant"
	"github.com/redis/go-redis/v9"
)

// Tracker keeps the presence state: which users currently hold at least one
// heartbeat connection. Local connections live in an RWMutex-guarded map;
// redis mirrors them with a TTL so presence is visible across instances and
// decays when an instance dies without cleanup.
type Tracker struct {
	mu    sync.RWMutex
	conns map[int64]map[string]struct{} // userId -> connIds
	rdb   *redis.Client
	ttl   time.Duration
}

// NewTracker creates a new Tracker
func NewTracker(rdb *redis.Client, ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Tracker{
		conns: make(map[int64]map[string]struct{}),
		rdb:   rdb,
		ttl:   ttl,
	}
}

// Register registers a connection for a user
func (t *Tracker) Register(ctx context.Context, userId int64, connId string) {
	t.mu.Lock()
	userConns, exists := t.conns[userId]
	if !exists {
		userConns = make(map[string]struct{}, 2)
		t.conns[userId] = userConns
	}
	userConns[connId] = struct{}{}
	t.mu.Unlock()

	t.setOnline(ctx, userId)
}

// Unregister removes a connection; returns true when the user's last
// connection closed and the user went offline
func (t *Tracker) Unregister(ctx context.Context, userId int64, connId string) bool {
	t.mu.Lock()
	userConns, exists := t.conns[userId]
	if exists {
		delete(userConns, connId)
		if len(userConns) == 0 {
			delete(t.conns, userId)
		}
	}
	offline := !exists || len(userConns) == 0
	t.mu.Unlock()

	if offline {
		t.setOffline(ctx, userId)
	}
	return offline
}

// HasConnection checks if user has any local connection
func (t *Tracker) HasConnection(userId int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	userConns, exists := t.conns[userId]
	return exists && len(userConns) > 0
}

// IsOnline checks if user is online. Local connections are checked first,
// then redis for connections held by other instances. Never fails: a lookup
// error reads as offline.
func (t *Tracker) IsOnline(ctx context.Context, userId int64) bool {
	if t.HasConnection(userId) {
		return true
	}

	if t.rdb != nil {
		key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
		exists, err := t.rdb.Exists(ctx, key).Result()
		return err == nil && exists > 0
	}

	return false
}

// Refresh extends the online TTL for a user that still has a connection.
// Rewrites the key rather than touching its TTL, so a key that already
// lapsed after a missed heartbeat window comes back on the next beat.
func (t *Tracker) Refresh(ctx context.Context, userId int64) {
	if t.HasConnection(userId) {
		t.setOnline(ctx, userId)
	}
}

// OnlineUserCount returns the number of locally online users
func (t *Tracker) OnlineUserCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.conns)
}

// OnlineConnCount returns the total number of local connections
func (t *Tracker) OnlineConnCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, userConns := range t.conns {
		count += len(userConns)
	}
	return count
}

// AllOnlineUserIds returns all locally online user Ids
func (t *Tracker) AllOnlineUserIds() []int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	userIds := make([]int64, 0, len(t.conns))
	for userId := range t.conns {
		userIds = append(userIds, userId)
	}
	return userIds
}

// setOnline marks user as online in redis
func (t *Tracker) setOnline(ctx context.Context, userId int64) {
	if t.rdb == nil {
		return
	}

	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	t.rdb.Set(ctx, key, "1", t.ttl)
}

// setOffline marks user as offline in redis
func (t *Tracker) setOffline(ctx context.Context, userId int64) {
	if t.rdb == nil {
		return
	}

	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	t.rdb.Del(ctx, key)
}
