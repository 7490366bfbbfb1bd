package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/pulseboard/internal/types"
)

// RequestIDMiddleware assigns every request an id, honoring one supplied by
// the caller, and echoes it on the response.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUIDPrefixRequest)
	}

	ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set("X-Request-ID", requestID)

	c.Next()
}
