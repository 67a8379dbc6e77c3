package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hatchpad/courier/internal/middleware"
	"github.com/hatchpad/courier/internal/service"
	"github.com/hatchpad/courier/pkg/errcode"
	"github.com/hatchpad/courier/pkg/response"
)

// ConversationHandler handles conversation-related requests
type ConversationHandler struct {
	convService *service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(convService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

// GetConversations handles the conversation list request. The response data
// is the viewer's conversations with previews, unread counts and the other
// participant's online status, newest activity first.
func (h *ConversationHandler) GetConversations(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	views, err := h.convService.ListConversations(ctx, userId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, views)
}

// FindConversation handles lookup of the conversation with another user
func (h *ConversationHandler) FindConversation(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	otherId, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || otherId <= 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	conv, err := h.convService.FindConversation(ctx, userId, otherId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if conv == nil {
		response.ErrorWithCode(ctx, c, errcode.ErrConvNotFound)
		return
	}

	response.Success(ctx, c, conv)
}

// MarkRead handles the bulk mark-as-read request
func (h *ConversationHandler) MarkRead(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	var req service.MarkReadRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	result, err := h.convService.MarkRead(ctx, userId, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
