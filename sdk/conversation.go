package sdk

import (
	"context"
	"strconv"
)

// GetConversations returns the viewer's conversations with previews, unread
// counts and the other participant's online status, newest activity first
func (c *Client) GetConversations(ctx context.Context) ([]*ConversationView, error) {
	var result []*ConversationView
	if err := c.get(ctx, "/api/conversations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FindConversation returns the conversation with another user, if any
func (c *Client) FindConversation(ctx context.Context, userId int64) (*Conversation, error) {
	var result Conversation
	params := map[string]string{
		"user_id": strconv.FormatInt(userId, 10),
	}
	if err := c.get(ctx, "/api/conversations/find", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkRead marks a batch of messages as read. The call is idempotent: ids
// already read by the caller or sent by the caller come back outside
// ReadMessageIds while the full message list reflects current read state.
func (c *Client) MarkRead(ctx context.Context, req *MarkReadRequest) (*MarkReadResult, error) {
	var result MarkReadResult
	if err := c.patch(ctx, "/api/conversations/read", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
