package entity

// Conversation represents a two-party conversation. The participant pair is
// stored normalized (User1Id < User2Id) with a unique index on the pair, so
// exactly one conversation can exist between any two users.
type Conversation struct {
	Id        int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	User1Id   int64 `json:"user1_id" gorm:"column:user1_id;uniqueIndex:idx_participant_pair"`
	User2Id   int64 `json:"user2_id" gorm:"column:user2_id;uniqueIndex:idx_participant_pair"`
	CreatedAt int64 `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt int64 `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for Conversation
func (Conversation) TableName() string {
	return "conversations"
}

// HasParticipant reports whether userId is one of the two participants
func (c *Conversation) HasParticipant(userId int64) bool {
	return c.User1Id == userId || c.User2Id == userId
}

// OtherParticipant returns the participant whose id is not userId.
// ok is false when userId is not a participant at all, which given the pair
// invariant indicates corrupted data and must be handled by the caller.
func (c *Conversation) OtherParticipant(userId int64) (int64, bool) {
	switch userId {
	case c.User1Id:
		return c.User2Id, true
	case c.User2Id:
		return c.User1Id, true
	default:
		return 0, false
	}
}

// ConversationView is the per-conversation preview returned by the list API
type ConversationView struct {
	Id                 int64          `json:"id"`
	Messages           []*MessageInfo `json:"messages"`
	LatestMessageText  string         `json:"latestMessageText"`
	UnreadMessageCount int64          `json:"unreadMessageCount"`
	LastReadMessage    *int64         `json:"lastReadMessage"`
	OtherUser          *UserInfo      `json:"otherUser"`
}
