package sdk

import "encoding/json"

// Response is the standard API response envelope
type Response struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// UserInfo represents public user information
type UserInfo struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
	PhotoUrl string `json:"photoUrl"`
	Online   bool   `json:"online"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	PhotoUrl string `json:"photo_url,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	PlatformId int    `json:"platform_id"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token    string    `json:"token"`
	UserInfo *UserInfo `json:"user_info"`
}

// UpdateUserRequest represents a profile update request
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	PhotoUrl string `json:"photo_url,omitempty"`
}

// MessageInfo represents a message with its read receipt state
type MessageInfo struct {
	Id        int64  `json:"id"`
	Text      string `json:"text"`
	SenderId  int64  `json:"senderId"`
	ReadAt    *int64 `json:"readAt"`
	CreatedAt int64  `json:"createdAt"`
}

// Conversation represents a stored conversation pair
type Conversation struct {
	Id        int64 `json:"id"`
	User1Id   int64 `json:"user1_id"`
	User2Id   int64 `json:"user2_id"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ConversationView represents a conversation as seen by the viewer
type ConversationView struct {
	Id                 int64          `json:"id"`
	Messages           []*MessageInfo `json:"messages"`
	LatestMessageText  string         `json:"latestMessageText"`
	UnreadMessageCount int64          `json:"unreadMessageCount"`
	LastReadMessage    *int64         `json:"lastReadMessage"`
	OtherUser          *UserInfo      `json:"otherUser"`
}

// SendMessageRequest represents a send message request
type SendMessageRequest struct {
	RecipientId int64  `json:"recipient_id"`
	ClientMsgId string `json:"client_msg_id"`
	Text        string `json:"text"`
}

// Message represents a stored message
type Message struct {
	Id             int64  `json:"id"`
	ConversationId int64  `json:"conversation_id"`
	SenderId       int64  `json:"sender_id"`
	ClientMsgId    string `json:"client_msg_id"`
	Text           string `json:"text"`
	CreatedAt      int64  `json:"created_at"`
}

// MarkReadRequest represents a bulk mark-as-read request
type MarkReadRequest struct {
	ConversationId int64   `json:"conversationId"`
	ReadAt         int64   `json:"readAt"`
	ReadMessages   []int64 `json:"readMessages"`
}

// MarkReadResult represents the outcome of a mark-as-read request
type MarkReadResult struct {
	Messages       []*MessageInfo `json:"messages"`
	ReadMessageIds []int64        `json:"readMessageIds"`
}
