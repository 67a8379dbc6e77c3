package sdk

import (
	"context"
	"strconv"
)

// GetSelfInfo returns the authenticated user's profile
func (c *Client) GetSelfInfo(ctx context.Context) (*UserInfo, error) {
	var result UserInfo
	if err := c.get(ctx, "/user/info", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserInfo returns another user's profile with online status
func (c *Client) GetUserInfo(ctx context.Context, userId int64) (*UserInfo, error) {
	var result UserInfo
	path := "/user/info/" + strconv.FormatInt(userId, 10)
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUserInfo updates the authenticated user's profile
func (c *Client) UpdateUserInfo(ctx context.Context, req *UpdateUserRequest) (*UserInfo, error) {
	var result UserInfo
	if err := c.put(ctx, "/user/update", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
