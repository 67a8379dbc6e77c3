package entity

// Message represents a message in a conversation. Messages are immutable
// after insert; read status lives in the reads table, never here.
type Message struct {
	Id             int64  `json:"id" gorm:"column:id;primaryKey"`
	ConversationId int64  `json:"conversation_id" gorm:"column:conversation_id;index:idx_conv_created,priority:1"`
	SenderId       int64  `json:"sender_id" gorm:"column:sender_id;uniqueIndex:idx_sender_client_msg,priority:1"`
	ClientMsgId    string `json:"client_msg_id" gorm:"column:client_msg_id;uniqueIndex:idx_sender_client_msg,priority:2"`
	Text           string `json:"text" gorm:"column:text"`
	CreatedAt      int64  `json:"created_at" gorm:"column:created_at;index:idx_conv_created,priority:2"`
	UpdatedAt      int64  `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for Message
func (Message) TableName() string {
	return "messages"
}

// MessageWithRead is a message joined with the non-sender participant's read
// receipt. ReadAt is nil while the message is unread.
type MessageWithRead struct {
	Message
	ReadAt *int64 `json:"read_at" gorm:"column:read_at"`
}

// MessageInfo represents message info for API responses
type MessageInfo struct {
	Id        int64  `json:"id"`
	Text      string `json:"text"`
	SenderId  int64  `json:"senderId"`
	ReadAt    *int64 `json:"readAt"`
	CreatedAt int64  `json:"createdAt"`
}

// ToMessageInfo converts MessageWithRead to MessageInfo
func (m *MessageWithRead) ToMessageInfo() *MessageInfo {
	return &MessageInfo{
		Id:        m.Id,
		Text:      m.Text,
		SenderId:  m.SenderId,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}
