package tests

import (
	"fmt"
	"testing"
)

// UpdateUserRequest represents profile update request
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	PhotoUrl string `json:"photo_url,omitempty"`
}

func TestUser_GetInfo(t *testing.T) {
	username := generateUsername("info_user")
	client, _, userId := RegisterAndLogin(t, username, "password123")

	t.Run("get own info", func(t *testing.T) {
		resp, err := client.GET("/user/info")
		if err != nil {
			t.Fatalf("get user info failed: %v", err)
		}
		AssertSuccess(t, resp, "get user info should succeed")

		var info UserInfo
		if err := resp.ParseData(&info); err != nil {
			t.Fatalf("parse user info failed: %v", err)
		}

		if info.Id != userId {
			t.Errorf("expected id=%d, got %d", userId, info.Id)
		}
		if info.Username != username {
			t.Errorf("expected username=%s, got %s", username, info.Username)
		}
	})

	t.Run("get another user's info", func(t *testing.T) {
		otherName := generateUsername("info_other")
		_, _, otherId := RegisterAndLogin(t, otherName, "password123")

		resp, err := client.GET(fmt.Sprintf("/user/info/%d", otherId))
		if err != nil {
			t.Fatalf("get user info failed: %v", err)
		}
		AssertSuccess(t, resp, "get other user info should succeed")

		var info UserInfo
		if err := resp.ParseData(&info); err != nil {
			t.Fatalf("parse user info failed: %v", err)
		}

		if info.Id != otherId {
			t.Errorf("expected id=%d, got %d", otherId, info.Id)
		}
	})

	t.Run("get non-existent user", func(t *testing.T) {
		resp, err := client.GET("/user/info/999999999")
		if err != nil {
			t.Fatalf("get user info failed: %v", err)
		}
		AssertError(t, resp, 2006, "should return user not found error")
	})
}

func TestUser_UpdateInfo(t *testing.T) {
	username := generateUsername("update_user")
	client, _, _ := RegisterAndLogin(t, username, "password123")

	t.Run("update photo url", func(t *testing.T) {
		req := UpdateUserRequest{
			PhotoUrl: "https://example.com/avatar.png",
		}

		resp, err := client.PUT("/user/update", req)
		if err != nil {
			t.Fatalf("update user failed: %v", err)
		}
		AssertSuccess(t, resp, "update should succeed")

		var info UserInfo
		if err := resp.ParseData(&info); err != nil {
			t.Fatalf("parse user info failed: %v", err)
		}
		if info.PhotoUrl != "https://example.com/avatar.png" {
			t.Errorf("expected photo url to be updated, got %s", info.PhotoUrl)
		}
	})

	t.Run("update username", func(t *testing.T) {
		newName := generateUsername("renamed_user")
		req := UpdateUserRequest{
			Username: newName,
		}

		resp, err := client.PUT("/user/update", req)
		if err != nil {
			t.Fatalf("update user failed: %v", err)
		}
		AssertSuccess(t, resp, "update should succeed")

		var info UserInfo
		if err := resp.ParseData(&info); err != nil {
			t.Fatalf("parse user info failed: %v", err)
		}
		if info.Username != newName {
			t.Errorf("expected username=%s, got %s", newName, info.Username)
		}
	})
}
