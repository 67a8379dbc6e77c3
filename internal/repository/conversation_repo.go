package repository

import (
	"context"
	"errors"

	"github.com/hatchpad/courier/internal/entity"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepo is the repository for conversation operations
type ConversationRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewConversationRepo creates a new ConversationRepo
func NewConversationRepo(db *gorm.DB, rdb *redis.Client) *ConversationRepo {
	return &ConversationRepo{db: db, rdb: rdb}
}

// Create creates a new conversation for the normalized pair
func (r *ConversationRepo) Create(ctx context.Context, conv *entity.Conversation) error {
	conv.User1Id, conv.User2Id = entity.NormalizePair(conv.User1Id, conv.User2Id)
	now := entity.NowUnixMilli()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	return r.db.WithContext(ctx).Create(conv).Error
}

// GetById gets conversation by Id, nil when absent
func (r *ConversationRepo) GetById(ctx context.Context, id int64) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// GetByPair gets the unique conversation between two users regardless of
// argument order, nil when absent
func (r *ConversationRepo) GetByPair(ctx context.Context, userA, userB int64) (*entity.Conversation, error) {
	u1, u2 := entity.NormalizePair(userA, userB)
	var conv entity.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// ListByParticipant gets all conversations where userId is a participant
func (r *ConversationRepo) ListByParticipant(ctx context.Context, userId int64) ([]*entity.Conversation, error) {
	var convs []*entity.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userId, userId).
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// EnsureForPair returns the conversation for the pair, creating it if needed.
// The upsert on the normalized pair keeps concurrent first messages between
// the same two users from creating two conversations.
func (r *ConversationRepo) EnsureForPair(ctx context.Context, tx *gorm.DB, userA, userB int64) (*entity.Conversation, error) {
	u1, u2 := entity.NormalizePair(userA, userB)
	now := entity.NowUnixMilli()

	conv := &entity.Conversation{
		User1Id:   u1,
		User2Id:   u2,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"updated_at": now,
		}),
	}).Create(conv).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the Id is populated on the conflict path too
	var out entity.Conversation
	err = tx.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Touch updates the updated_at timestamp
func (r *ConversationRepo) Touch(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", entity.NowUnixMilli()).Error
}
