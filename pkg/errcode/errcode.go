package errcode

import (
	"fmt"
	"net/http"
)

// Error represents a business error
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("errcode: %d, msg: %s", e.Code, e.Msg)
}

// New creates a new error with code and message
func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap wraps an error with additional context
func (e *Error) Wrap(err error) *Error {
	if err == nil {
		return e
	}
	return &Error{
		Code: e.Code,
		Msg:  fmt.Sprintf("%s: %v", e.Msg, err),
	}
}

// Common error codes
var (
	// Success
	ErrSuccess = New(0, "success")

	// Common errors (1xxx)
	ErrInvalidParam    = New(1001, "invalid parameter")
	ErrInternalServer  = New(1002, "internal server error")
	ErrUnauthorized    = New(1003, "unauthorized")
	ErrForbidden       = New(1004, "forbidden")
	ErrNotFound        = New(1005, "not found")
	ErrTooManyRequests = New(1006, "too many requests")

	// Auth errors (2xxx)
	ErrTokenInvalid  = New(2001, "token invalid")
	ErrTokenExpired  = New(2002, "token expired")
	ErrTokenMissing  = New(2003, "token missing")
	ErrTokenMismatch = New(2004, "token user mismatch")
	ErrLoginFailed   = New(2005, "login failed")
	ErrUserNotFound  = New(2006, "user not found")
	ErrUserExists    = New(2007, "user already exists")
	ErrPasswordWrong = New(2008, "password wrong")

	// Conversation errors (3xxx)
	ErrConvNotFound   = New(3001, "conversation not found")
	ErrNotParticipant = New(3002, "not a participant of this conversation")
	ErrConvSelf       = New(3003, "cannot start a conversation with yourself")
	ErrConvIntegrity  = New(3004, "conversation participant integrity violation")

	// Message errors (4xxx)
	ErrMessageNotFound  = New(4001, "message not found")
	ErrMessageDuplicate = New(4002, "duplicate message")
	ErrSendFailed       = New(4003, "message send failed")
	ErrMarkReadFailed   = New(4004, "mark read failed")
	ErrEmptyText        = New(4005, "message text is empty")
)

// HTTPStatus maps a business error to the HTTP status it is served with.
// Distinct error kinds stay distinguishable on the wire: auth failures are
// 401, permission failures 403, validation 400, everything unexpected 500.
func HTTPStatus(e *Error) int {
	switch e.Code {
	case ErrSuccess.Code:
		return http.StatusOK
	case ErrInvalidParam.Code, ErrConvSelf.Code, ErrEmptyText.Code:
		return http.StatusBadRequest
	case ErrUnauthorized.Code, ErrTokenInvalid.Code, ErrTokenExpired.Code,
		ErrTokenMissing.Code, ErrTokenMismatch.Code, ErrLoginFailed.Code,
		ErrPasswordWrong.Code:
		return http.StatusUnauthorized
	case ErrForbidden.Code, ErrNotParticipant.Code:
		return http.StatusForbidden
	case ErrNotFound.Code, ErrUserNotFound.Code, ErrConvNotFound.Code,
		ErrMessageNotFound.Code:
		return http.StatusNotFound
	case ErrTooManyRequests.Code:
		return http.StatusTooManyRequests
	case ErrUserExists.Code, ErrMessageDuplicate.Code:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
