package gateway

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/hatchpad/courier/pkg/constant"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// recordingHook captures issued redis commands without touching the network
type recordingHook struct {
	cmds []redis.Cmder
}

func (h *recordingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, nil
	}
}

func (h *recordingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.cmds = append(h.cmds, cmd)
		return nil
	}
}

func (h *recordingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		h.cmds = append(h.cmds, cmds...)
		return nil
	}
}

func newRecordingRedis() (*redis.Client, *recordingHook) {
	hook := &recordingHook{}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)
	return client, hook
}

func TestTracker_RegisterUnregister(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(nil, time.Minute)

	assert.False(t, tracker.IsOnline(ctx, 1))

	tracker.Register(ctx, 1, "conn-a")
	assert.True(t, tracker.IsOnline(ctx, 1))
	assert.Equal(t, 1, tracker.OnlineUserCount())
	assert.Equal(t, 1, tracker.OnlineConnCount())

	// Second connection for the same user
	tracker.Register(ctx, 1, "conn-b")
	assert.Equal(t, 1, tracker.OnlineUserCount())
	assert.Equal(t, 2, tracker.OnlineConnCount())

	// Closing one connection keeps the user online
	offline := tracker.Unregister(ctx, 1, "conn-a")
	assert.False(t, offline)
	assert.True(t, tracker.IsOnline(ctx, 1))

	// Closing the last connection takes the user offline
	offline = tracker.Unregister(ctx, 1, "conn-b")
	assert.True(t, offline)
	assert.False(t, tracker.IsOnline(ctx, 1))
	assert.Equal(t, 0, tracker.OnlineUserCount())
}

func TestTracker_UnknownUserIsOffline(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(nil, time.Minute)

	assert.False(t, tracker.IsOnline(ctx, 99))

	// Unregistering a connection that was never registered stays harmless
	offline := tracker.Unregister(ctx, 99, "ghost")
	assert.True(t, offline)
}

func TestTracker_AllOnlineUserIds(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(nil, time.Minute)

	tracker.Register(ctx, 1, "a")
	tracker.Register(ctx, 2, "b")

	ids := tracker.AllOnlineUserIds()
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestTracker_RefreshRewritesOnlineKey(t *testing.T) {
	ctx := context.Background()
	rdb, hook := newRecordingRedis()
	tracker := NewTracker(rdb, time.Minute)

	tracker.Register(ctx, 7, "conn-a")
	hook.cmds = nil

	// A heartbeat after the key lapsed must recreate it, so Refresh has to
	// issue a SET with TTL rather than an EXPIRE on the existing key
	tracker.Refresh(ctx, 7)

	if assert.Len(t, hook.cmds, 1) {
		cmd := hook.cmds[0]
		assert.Equal(t, "set", cmd.Name())
		assert.Equal(t, fmt.Sprintf(constant.RedisKeyOnline(), int64(7)), cmd.Args()[1])
	}
}

func TestTracker_RefreshWithoutConnectionIsNoop(t *testing.T) {
	ctx := context.Background()
	rdb, hook := newRecordingRedis()
	tracker := NewTracker(rdb, time.Minute)

	tracker.Refresh(ctx, 7)
	assert.Empty(t, hook.cmds)
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(nil, time.Minute)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(userId int64) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				tracker.Register(ctx, userId, "conn")
				tracker.IsOnline(ctx, userId)
				tracker.Unregister(ctx, userId, "conn")
			}
		}(int64(i % 4))
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
