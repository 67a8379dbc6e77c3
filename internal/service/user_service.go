package service

import (
	"context"

	"github.com/hatchpad/courier/internal/entity"
	"github.com/hatchpad/courier/internal/repository"
	"github.com/hatchpad/courier/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// UserService handles user-related business logic
type UserService struct {
	userRepo *repository.UserRepo
	presence PresenceOracle
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repository.UserRepo, presence PresenceOracle) *UserService {
	return &UserService{
		userRepo: userRepo,
		presence: presence,
	}
}

// GetUserInfo gets user info by Id
func (s *UserService) GetUserInfo(ctx context.Context, userId int64) (*entity.UserInfo, error) {
	user, err := s.userRepo.GetById(ctx, userId)
	if err != nil {
		log.CtxDebug(ctx, "get user failed: user_id=%d, error=%v", userId, err)
		return nil, errcode.ErrUserNotFound
	}

	info := user.ToUserInfo()
	info.Online = s.presence.IsOnline(ctx, userId)
	return info, nil
}

// UpdateUserRequest represents user update request
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	PhotoUrl string `json:"photo_url,omitempty"`
}

// UpdateUserInfo updates user info
func (s *UserService) UpdateUserInfo(ctx context.Context, userId int64, req *UpdateUserRequest) (*entity.UserInfo, error) {
	exists, err := s.userRepo.Exists(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "check user exists failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if !exists {
		return nil, errcode.ErrUserNotFound
	}

	updates := make(map[string]interface{})
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.PhotoUrl != "" {
		updates["photo_url"] = req.PhotoUrl
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userId, updates); err != nil {
			log.CtxError(ctx, "update user failed: %v", err)
			return nil, errcode.ErrInternalServer
		}
	}

	return s.GetUserInfo(ctx, userId)
}
