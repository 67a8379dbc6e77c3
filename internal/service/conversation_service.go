package service

import (
	"context"
	"sort"

	"github.com/hatchpad/courier/internal/entity"
	"github.com/hatchpad/courier/internal/repository"
	"github.com/hatchpad/courier/pkg/errcode"
	"github.com/mbeoliero/kit/log"
	"gorm.io/gorm"
)

// PresenceOracle answers whether a user currently has an active connection.
// Implementations must not fail: an unknown user or a lookup error both read
// as offline.
type PresenceOracle interface {
	IsOnline(ctx context.Context, userId int64) bool
}

// ConversationService handles conversation listing and read-state logic
type ConversationService struct {
	convRepo *repository.ConversationRepo
	msgRepo  *repository.MessageRepo
	readRepo *repository.ReadRepo
	userRepo *repository.UserRepo
	repos    *repository.Repositories
	presence PresenceOracle
}

// NewConversationService creates a new ConversationService
func NewConversationService(repos *repository.Repositories, presence PresenceOracle) *ConversationService {
	return &ConversationService{
		convRepo: repos.Conversation,
		msgRepo:  repos.Message,
		readRepo: repos.Read,
		userRepo: repos.User,
		repos:    repos,
		presence: presence,
	}
}

// FindConversation finds the unique conversation between two users, in either
// argument order. Returns nil without error when no such conversation exists.
func (s *ConversationService) FindConversation(ctx context.Context, userA, userB int64) (*entity.Conversation, error) {
	conv, err := s.convRepo.GetByPair(ctx, userA, userB)
	if err != nil {
		log.CtxError(ctx, "find conversation failed: users=(%d,%d), error=%v", userA, userB, err)
		return nil, errcode.ErrInternalServer
	}
	return conv, nil
}

// ListConversations assembles the viewer's conversation list: every
// conversation they participate in that has at least one message, each with
// its full ordered message list, derived preview and the other participant's
// info including online status. Output is sorted by the latest message's
// creation time descending; equal times fall back to conversation id
// descending.
func (s *ConversationService) ListConversations(ctx context.Context, viewerId int64) ([]*entity.ConversationView, error) {
	convs, err := s.convRepo.ListByParticipant(ctx, viewerId)
	if err != nil {
		log.CtxError(ctx, "list conversations failed: user_id=%d, error=%v", viewerId, err)
		return nil, errcode.ErrInternalServer
	}

	convIds := make([]int64, 0, len(convs))
	otherIds := make([]int64, 0, len(convs))
	for _, conv := range convs {
		otherId, ok := conv.OtherParticipant(viewerId)
		if !ok {
			// Should not happen given the participant-pair invariant
			log.CtxError(ctx, "conversation without viewer as participant: conversation_id=%d, viewer_id=%d", conv.Id, viewerId)
			continue
		}
		convIds = append(convIds, conv.Id)
		otherIds = append(otherIds, otherId)
	}

	msgsByConv, err := s.msgRepo.ListWithReadStateByConversations(ctx, convIds)
	if err != nil {
		log.CtxError(ctx, "load messages failed: user_id=%d, error=%v", viewerId, err)
		return nil, errcode.ErrInternalServer
	}

	users, err := s.userRepo.GetByIds(ctx, otherIds)
	if err != nil {
		log.CtxError(ctx, "load participants failed: user_id=%d, error=%v", viewerId, err)
		return nil, errcode.ErrInternalServer
	}
	userById := make(map[int64]*entity.User, len(users))
	for _, u := range users {
		userById[u.Id] = u
	}

	views := make([]*entity.ConversationView, 0, len(convs))
	for _, conv := range convs {
		otherId, ok := conv.OtherParticipant(viewerId)
		if !ok {
			continue
		}

		rows := msgsByConv[conv.Id]
		if len(rows) == 0 {
			// No latest message to preview; conversations stay hidden until
			// the first message arrives
			continue
		}

		messages := make([]*entity.MessageInfo, 0, len(rows))
		for _, row := range rows {
			messages = append(messages, row.ToMessageInfo())
		}

		preview := entity.ComputePreview(messages, viewerId)

		otherUser, found := userById[otherId]
		if !found {
			log.CtxError(ctx, "participant missing: conversation_id=%d, user_id=%d", conv.Id, otherId)
			continue
		}
		otherInfo := otherUser.ToUserInfo()
		otherInfo.Online = s.presence.IsOnline(ctx, otherId)

		views = append(views, &entity.ConversationView{
			Id:                 conv.Id,
			Messages:           messages,
			LatestMessageText:  preview.LatestMessageText,
			UnreadMessageCount: preview.UnreadMessageCount,
			LastReadMessage:    preview.LastReadMessage,
			OtherUser:          otherInfo,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		a := entity.LatestMessage(views[i].Messages)
		b := entity.LatestMessage(views[j].Messages)
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt > b.CreatedAt
		}
		return views[i].Id > views[j].Id
	})

	return views, nil
}

// MarkReadRequest represents a bulk mark-as-read request
type MarkReadRequest struct {
	ConversationId int64   `json:"conversationId"`
	ReadAt         int64   `json:"readAt"`
	ReadMessages   []int64 `json:"readMessages"`
}

// MarkReadResult is the outcome of a mark-as-read call. Messages holds the
// fresh state of every message the call actually updated; ReadMessageIds
// echoes the caller's input so optimistic UI state can be reconciled.
type MarkReadResult struct {
	Messages       []*entity.MessageInfo `json:"messages"`
	ReadMessageIds []int64               `json:"readMessageIds"`
}

// MarkRead marks the given messages as read by callerId in one transaction.
// Only messages that are in the conversation, listed in the request, sent by
// the other participant and still unread are touched; everything else is
// silently skipped, which makes the call idempotent. A missing conversation
// and a conversation the caller is not part of fail identically so the call
// does not leak which conversations exist.
func (s *ConversationService) MarkRead(ctx context.Context, callerId int64, req *MarkReadRequest) (*MarkReadResult, error) {
	if req.ConversationId == 0 {
		return nil, errcode.ErrInvalidParam
	}

	conv, err := s.convRepo.GetById(ctx, req.ConversationId)
	if err != nil {
		log.CtxError(ctx, "get conversation failed: conversation_id=%d, error=%v", req.ConversationId, err)
		return nil, errcode.ErrInternalServer
	}
	if conv == nil || !conv.HasParticipant(callerId) {
		return nil, errcode.ErrNotParticipant
	}

	readAt := req.ReadAt
	if readAt == 0 {
		readAt = entity.NowUnixMilli()
	}

	result := &MarkReadResult{
		Messages:       []*entity.MessageInfo{},
		ReadMessageIds: req.ReadMessages,
	}

	err = s.repos.Transaction(ctx, func(tx *gorm.DB) error {
		targetIds, err := s.readRepo.LockUnreadTargets(ctx, tx, conv.Id, callerId, req.ReadMessages)
		if err != nil {
			return err
		}
		if len(targetIds) == 0 {
			return nil
		}

		if err := s.readRepo.CreateBatch(ctx, tx, targetIds, callerId, readAt); err != nil {
			return err
		}

		updated, err := s.msgRepo.ListWithReadStateByIds(ctx, tx, conv.Id, targetIds)
		if err != nil {
			return err
		}
		for _, row := range updated {
			result.Messages = append(result.Messages, row.ToMessageInfo())
		}
		return nil
	})
	if err != nil {
		log.CtxError(ctx, "mark read failed: conversation_id=%d, caller_id=%d, error=%v", conv.Id, callerId, err)
		return nil, errcode.ErrMarkReadFailed
	}

	log.CtxInfo(ctx, "messages marked read: conversation_id=%d, caller_id=%d, requested=%d, updated=%d",
		conv.Id, callerId, len(req.ReadMessages), len(result.Messages))
	return result, nil
}
