package repository

import (
	"context"

	"github.com/hatchpad/courier/internal/entity"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReadRepo is the repository for read receipt operations
type ReadRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewReadRepo creates a new ReadRepo
func NewReadRepo(db *gorm.DB, rdb *redis.Client) *ReadRepo {
	return &ReadRepo{db: db, rdb: rdb}
}

// LockUnreadTargets resolves and row-locks the messages a mark-read call may
// touch: in the conversation, in messageIds, not sent by readerId, and with no
// receipt from readerId yet. Must run inside a transaction; the FOR UPDATE
// lock serializes concurrent mark-read calls on the same messages.
func (r *ReadRepo) LockUnreadTargets(ctx context.Context, tx *gorm.DB, conversationId, readerId int64, messageIds []int64) ([]int64, error) {
	if len(messageIds) == 0 {
		return nil, nil
	}

	var ids []int64
	err := tx.WithContext(ctx).
		Model(&entity.Message{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("conversation_id = ? AND id IN ? AND sender_id <> ?", conversationId, messageIds, readerId).
		Where("NOT EXISTS (SELECT 1 FROM reads WHERE reads.message_id = messages.id AND reads.user_id = ?)", readerId).
		Pluck("messages.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateBatch inserts receipts for messageIds read by userId at readAt.
// Conflicting rows are skipped so an existing receipt keeps its original
// read_at (first read wins).
func (r *ReadRepo) CreateBatch(ctx context.Context, tx *gorm.DB, messageIds []int64, userId, readAt int64) error {
	if len(messageIds) == 0 {
		return nil
	}

	reads := make([]*entity.Read, 0, len(messageIds))
	for _, msgId := range messageIds {
		reads = append(reads, &entity.Read{
			MessageId: msgId,
			UserId:    userId,
			ReadAt:    readAt,
		})
	}

	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&reads).Error
}

// GetByMessageAndUser gets a receipt, nil when absent
func (r *ReadRepo) GetByMessageAndUser(ctx context.Context, messageId, userId int64) (*entity.Read, error) {
	var read entity.Read
	err := r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageId, userId).
		First(&read).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &read, nil
}
