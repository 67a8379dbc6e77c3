package sdk

import "fmt"

// Error is an API error returned by the server
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
}

// Common error codes returned by the server
const (
	CodeSuccess         = 0
	CodeInvalidParam    = 1001
	CodeInternalServer  = 1002
	CodeUnauthorized    = 1003
	CodeForbidden       = 1004
	CodeNotFound        = 1005
	CodeTooManyRequests = 1006

	CodeTokenInvalid  = 2001
	CodeTokenExpired  = 2002
	CodeTokenMissing  = 2003
	CodeTokenMismatch = 2004
	CodeLoginFailed   = 2005
	CodeUserNotFound  = 2006
	CodeUserExists    = 2007
	CodePasswordWrong = 2008

	CodeConvNotFound   = 3001
	CodeNotParticipant = 3002
	CodeConvSelf       = 3003
	CodeConvIntegrity  = 3004

	CodeMessageNotFound  = 4001
	CodeMessageDuplicate = 4002
	CodeSendFailed       = 4003
	CodeMarkReadFailed   = 4004
	CodeEmptyText        = 4005
)

// IsErrorCode reports whether err is an API error with the given code
func IsErrorCode(err error, code int) bool {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Code == code
	}
	return false
}
