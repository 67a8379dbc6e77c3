package tests

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialPresence opens a presence connection for the given token
func dialPresence(token string) (*websocket.Conn, error) {
	host := strings.TrimPrefix(testConfig.BaseURL, "http://")
	u := url.URL{
		Scheme:   "ws",
		Host:     host,
		Path:     "/ws",
		RawQuery: fmt.Sprintf("token=%s", token),
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial presence: %w", err)
	}
	return conn, nil
}

func TestPresence_Connect(t *testing.T) {
	_, token, _ := RegisterAndLogin(t, generateUsername("ws_user"), "password123")

	t.Run("connect with valid token", func(t *testing.T) {
		conn, err := dialPresence(token)
		if err != nil {
			t.Fatalf("connect failed: %v", err)
		}
		defer conn.Close()
	})

	t.Run("connect with invalid token", func(t *testing.T) {
		_, err := dialPresence("invalid_token")
		if err == nil {
			t.Error("should fail with invalid token")
		}
	})

	t.Run("connect without token", func(t *testing.T) {
		_, err := dialPresence("")
		if err == nil {
			t.Error("should fail without token")
		}
	})
}

func TestPresence_OnlineStatus(t *testing.T) {
	aliceClient, _, _ := RegisterAndLogin(t, generateUsername("ws_alice"), "password123")
	_, bobToken, bobId := RegisterAndLogin(t, generateUsername("ws_bob"), "password123")

	SendText(t, aliceClient, bobId, "are you there?")

	t.Run("offline before connecting", func(t *testing.T) {
		views := GetConversations(t, aliceClient)
		if len(views) != 1 {
			t.Fatalf("expected 1 conversation, got %d", len(views))
		}
		if views[0].OtherUser.Online {
			t.Error("bob should be offline")
		}
	})

	conn, err := dialPresence(bobToken)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	t.Run("online while connected", func(t *testing.T) {
		views := GetConversations(t, aliceClient)
		if len(views) != 1 {
			t.Fatalf("expected 1 conversation, got %d", len(views))
		}
		if !views[0].OtherUser.Online {
			t.Error("bob should be online")
		}

		resp, err := aliceClient.GET(fmt.Sprintf("/user/info/%d", bobId))
		if err != nil {
			t.Fatalf("get user info failed: %v", err)
		}
		AssertSuccess(t, resp)

		var info UserInfo
		if err := resp.ParseData(&info); err != nil {
			t.Fatalf("parse user info failed: %v", err)
		}
		if !info.Online {
			t.Error("user info should report online")
		}
	})

	t.Run("offline after disconnecting", func(t *testing.T) {
		conn.Close()
		time.Sleep(200 * time.Millisecond)

		views := GetConversations(t, aliceClient)
		if len(views) != 1 {
			t.Fatalf("expected 1 conversation, got %d", len(views))
		}
		if views[0].OtherUser.Online {
			t.Error("bob should be offline after disconnect")
		}
	})
}

func TestPresence_MultipleConnections(t *testing.T) {
	aliceClient, _, _ := RegisterAndLogin(t, generateUsername("ws_multi_alice"), "password123")
	_, bobToken, bobId := RegisterAndLogin(t, generateUsername("ws_multi_bob"), "password123")

	SendText(t, aliceClient, bobId, "ping")

	conns := make([]*websocket.Conn, 3)
	for i := range conns {
		conn, err := dialPresence(bobToken)
		if err != nil {
			t.Fatalf("connect %d failed: %v", i, err)
		}
		conns[i] = conn
	}
	time.Sleep(100 * time.Millisecond)

	t.Run("online with one connection remaining", func(t *testing.T) {
		conns[0].Close()
		conns[1].Close()
		time.Sleep(200 * time.Millisecond)

		views := GetConversations(t, aliceClient)
		if len(views) != 1 {
			t.Fatalf("expected 1 conversation, got %d", len(views))
		}
		if !views[0].OtherUser.Online {
			t.Error("bob should still be online with one open connection")
		}
	})

	t.Run("offline once all connections drop", func(t *testing.T) {
		conns[2].Close()
		time.Sleep(200 * time.Millisecond)

		views := GetConversations(t, aliceClient)
		if views[0].OtherUser.Online {
			t.Error("bob should be offline after all connections close")
		}
	})
}
