package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/studyguide-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	HeaderClientID  = "X-Client-Id"
	HeaderPageCount = "X-Page-Count"

	maxClientKeyLen = 128
)

// AttachTraceContext puts request and trace ids on the context and echoes
// them back. An active otel span supplies the trace id when the caller sent
// none.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		td := &ctxutil.TraceData{
			RequestID: headerOrNew(c, headerRequestID),
			TraceID:   strings.TrimSpace(c.GetHeader(headerTraceID)),
		}
		if td.TraceID == "" {
			if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
				td.TraceID = sc.TraceID().String()
			} else {
				td.TraceID = uuid.NewString()
			}
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		c.Writer.Header().Set(headerTraceID, td.TraceID)
		c.Writer.Header().Set(headerRequestID, td.RequestID)
		c.Next()
	}
}

// AttachClientKey copies X-Client-Id onto the request context. The key only
// scopes the cached last plan; it is not authentication.
func AttachClientKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderClientID))
		if len(key) > maxClientKeyLen {
			key = key[:maxClientKeyLen]
		}
		if key != "" {
			c.Request = c.Request.WithContext(ctxutil.WithClientKey(c.Request.Context(), key))
		}
		c.Next()
	}
}

func headerOrNew(c *gin.Context, name string) string {
	if v := strings.TrimSpace(c.GetHeader(name)); v != "" {
		return v
	}
	return uuid.NewString()
}
