package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
)

const (
	// RequestIdHeader is the header carrying the request Id
	RequestIdHeader = "X-Request-Id"
	// RequestIdKey is the context key for request Id
	RequestIdKey = "request_id"
)

// RequestId assigns each request a unique Id, honoring one supplied by the
// caller, and echoes it in the response for log correlation
func RequestId() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		requestId := string(c.GetHeader(RequestIdHeader))
		if requestId == "" {
			requestId = uuid.New().String()
		}

		c.Set(RequestIdKey, requestId)
		c.Header(RequestIdHeader, requestId)

		c.Next(ctx)
	}
}

// GetRequestId gets request Id from context
func GetRequestId(c *app.RequestContext) string {
	if v, ok := c.Get(RequestIdKey); ok {
		return v.(string)
	}
	return ""
}
