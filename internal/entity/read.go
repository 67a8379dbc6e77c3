package entity

// Read is a read receipt: user read message at read_at. The unique index on
// (message_id, user_id) keeps at most one receipt per pair; re-marking an
// already-read message is a no-op, so the first read_at always wins.
type Read struct {
	Id        int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	MessageId int64 `json:"message_id" gorm:"column:message_id;uniqueIndex:idx_message_user,priority:1"`
	UserId    int64 `json:"user_id" gorm:"column:user_id;uniqueIndex:idx_message_user,priority:2"`
	ReadAt    int64 `json:"read_at" gorm:"column:read_at"`
}

// TableName returns the table name for Read
func (Read) TableName() string {
	return "reads"
}
