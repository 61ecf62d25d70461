package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDKey is the gin context key carrying the request trace id.
const TraceIDKey = "trace_id"

// TraceIDHeader lets the mobile client supply its own trace id, so quest
// mutations and their audit entries correlate with the client's logs.
const TraceIDHeader = "X-Trace-ID"

// TraceID tags every request with a trace id. A reasonable client-supplied
// id is kept; a missing or oversized one is replaced with a fresh UUID. The
// id is echoed back in the response header either way.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(TraceIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(TraceIDKey, id)
		c.Header(TraceIDHeader, id)
		c.Next()
	}
}

// GetTraceID returns the request's trace id, or "" outside a traced request.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
