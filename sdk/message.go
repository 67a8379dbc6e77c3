package sdk

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

// SendMessage sends a text message to another user. When ClientMsgId is
// empty a random one is generated; reusing the same ClientMsgId on retry
// returns the originally stored message.
func (c *Client) SendMessage(ctx context.Context, req *SendMessageRequest) (*Message, error) {
	if req.ClientMsgId == "" {
		req.ClientMsgId = uuid.NewString()
	}

	var result Message
	if err := c.post(ctx, "/msg/send", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendText sends text to a recipient with a generated client message id
func (c *Client) SendText(ctx context.Context, recipientId int64, text string) (*Message, error) {
	return c.SendMessage(ctx, &SendMessageRequest{
		RecipientId: recipientId,
		Text:        text,
	})
}

// ListMessages lists all messages of a conversation with read state
func (c *Client) ListMessages(ctx context.Context, conversationId int64) ([]*MessageInfo, error) {
	var result []*MessageInfo
	params := map[string]string{
		"conversation_id": strconv.FormatInt(conversationId, 10),
	}
	if err := c.get(ctx, "/msg/list", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}
