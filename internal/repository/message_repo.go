package repository

import (
	"context"
	"errors"

	"github.com/hatchpad/courier/internal/entity"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// MessageRepo is the repository for message operations
type MessageRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewMessageRepo creates a new MessageRepo
func NewMessageRepo(db *gorm.DB, rdb *redis.Client) *MessageRepo {
	return &MessageRepo{db: db, rdb: rdb}
}

// Create creates a new message
func (r *MessageRepo) Create(ctx context.Context, tx *gorm.DB, msg *entity.Message) error {
	now := entity.NowUnixMilli()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	return tx.WithContext(ctx).Create(msg).Error
}

// GetByClientMsgId gets message by sender_id and client_msg_id (for idempotency check)
func (r *MessageRepo) GetByClientMsgId(ctx context.Context, senderId int64, clientMsgId string) (*entity.Message, error) {
	var msg entity.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND client_msg_id = ?", senderId, clientMsgId).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// readStateJoin joins each message with the non-sender participant's receipt.
// Receipts only ever exist for the reading (non-sender) party, so in a
// two-party conversation the join resolves to at most one row per message.
const readStateJoin = "LEFT JOIN reads r ON r.message_id = messages.id AND r.user_id <> messages.sender_id"

// ListWithReadState lists all messages of a conversation with read state,
// ordered by creation time ascending (Id breaks equal timestamps)
func (r *MessageRepo) ListWithReadState(ctx context.Context, conversationId int64) ([]*entity.MessageWithRead, error) {
	var messages []*entity.MessageWithRead
	err := r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Select("messages.*, r.read_at").
		Joins(readStateJoin).
		Where("messages.conversation_id = ?", conversationId).
		Order("messages.created_at ASC, messages.id ASC").
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListWithReadStateByIds lists specific messages of a conversation with read
// state inside a transaction
func (r *MessageRepo) ListWithReadStateByIds(ctx context.Context, tx *gorm.DB, conversationId int64, ids []int64) ([]*entity.MessageWithRead, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var messages []*entity.MessageWithRead
	err := tx.WithContext(ctx).
		Model(&entity.Message{}).
		Select("messages.*, r.read_at").
		Joins(readStateJoin).
		Where("messages.conversation_id = ? AND messages.id IN ?", conversationId, ids).
		Order("messages.created_at ASC, messages.id ASC").
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListWithReadStateByConversations lists messages with read state for a set of
// conversations in one query, used to assemble the conversation list
func (r *MessageRepo) ListWithReadStateByConversations(ctx context.Context, conversationIds []int64) (map[int64][]*entity.MessageWithRead, error) {
	if len(conversationIds) == 0 {
		return map[int64][]*entity.MessageWithRead{}, nil
	}

	var messages []*entity.MessageWithRead
	err := r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Select("messages.*, r.read_at").
		Joins(readStateJoin).
		Where("messages.conversation_id IN ?", conversationIds).
		Order("messages.created_at ASC, messages.id ASC").
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}

	byConv := make(map[int64][]*entity.MessageWithRead, len(conversationIds))
	for _, msg := range messages {
		byConv[msg.ConversationId] = append(byConv[msg.ConversationId], msg)
	}
	return byConv, nil
}
