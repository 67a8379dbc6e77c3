package service

import (
	"context"

	"github.com/hatchpad/courier/internal/entity"
	"github.com/hatchpad/courier/internal/repository"
	"github.com/hatchpad/courier/pkg/errcode"
	"github.com/hatchpad/courier/pkg/idgen"
	"github.com/mbeoliero/kit/log"
	"gorm.io/gorm"
)

// MessageService handles message sending and listing
type MessageService struct {
	msgRepo  *repository.MessageRepo
	convRepo *repository.ConversationRepo
	userRepo *repository.UserRepo
	repos    *repository.Repositories
}

// NewMessageService creates a new MessageService
func NewMessageService(repos *repository.Repositories) *MessageService {
	return &MessageService{
		msgRepo:  repos.Message,
		convRepo: repos.Conversation,
		userRepo: repos.User,
		repos:    repos,
	}
}

// SendMessageRequest represents send message request
type SendMessageRequest struct {
	RecipientId int64  `json:"recipient_id"`
	ClientMsgId string `json:"client_msg_id"`
	Text        string `json:"text"`
}

// SendMessage creates a message from senderId to the recipient, creating the
// conversation on the first message between the pair. A duplicate
// client_msg_id returns the previously created message unchanged.
func (s *MessageService) SendMessage(ctx context.Context, senderId int64, req *SendMessageRequest) (*entity.Message, error) {
	if req.RecipientId == 0 || req.ClientMsgId == "" {
		return nil, errcode.ErrInvalidParam
	}
	if req.RecipientId == senderId {
		return nil, errcode.ErrConvSelf
	}
	if req.Text == "" {
		return nil, errcode.ErrEmptyText
	}

	exists, err := s.userRepo.Exists(ctx, req.RecipientId)
	if err != nil {
		log.CtxError(ctx, "check recipient failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if !exists {
		return nil, errcode.ErrUserNotFound
	}

	// Idempotency: a retried send returns the original message
	existingMsg, err := s.msgRepo.GetByClientMsgId(ctx, senderId, req.ClientMsgId)
	if err != nil {
		log.CtxError(ctx, "check idempotency failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if existingMsg != nil {
		log.CtxDebug(ctx, "duplicate message: client_msg_id=%s", req.ClientMsgId)
		return existingMsg, nil
	}

	msgId, err := idgen.NextID()
	if err != nil {
		log.CtxError(ctx, "allocate message id failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	var msg *entity.Message

	err = s.repos.Transaction(ctx, func(tx *gorm.DB) error {
		conv, err := s.convRepo.EnsureForPair(ctx, tx, senderId, req.RecipientId)
		if err != nil {
			return err
		}

		msg = &entity.Message{
			Id:             msgId,
			ConversationId: conv.Id,
			SenderId:       senderId,
			ClientMsgId:    req.ClientMsgId,
			Text:           req.Text,
		}
		return s.msgRepo.Create(ctx, tx, msg)
	})
	if err != nil {
		log.CtxError(ctx, "send message failed: sender_id=%d, recipient_id=%d, error=%v", senderId, req.RecipientId, err)
		return nil, errcode.ErrSendFailed
	}

	log.CtxInfo(ctx, "message sent: sender_id=%d, recipient_id=%d, message_id=%d", senderId, req.RecipientId, msg.Id)
	return msg, nil
}

// ListMessages lists all messages of a conversation with read state. Only a
// participant may read them; missing conversation and foreign conversation
// fail identically.
func (s *MessageService) ListMessages(ctx context.Context, callerId, conversationId int64) ([]*entity.MessageInfo, error) {
	if conversationId == 0 {
		return nil, errcode.ErrInvalidParam
	}

	conv, err := s.convRepo.GetById(ctx, conversationId)
	if err != nil {
		log.CtxError(ctx, "get conversation failed: conversation_id=%d, error=%v", conversationId, err)
		return nil, errcode.ErrInternalServer
	}
	if conv == nil || !conv.HasParticipant(callerId) {
		return nil, errcode.ErrNotParticipant
	}

	rows, err := s.msgRepo.ListWithReadState(ctx, conversationId)
	if err != nil {
		log.CtxError(ctx, "list messages failed: conversation_id=%d, error=%v", conversationId, err)
		return nil, errcode.ErrInternalServer
	}

	messages := make([]*entity.MessageInfo, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, row.ToMessageInfo())
	}
	return messages, nil
}
