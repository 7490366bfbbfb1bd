package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/pulseboard/internal/auth"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// AuthenticateMiddleware verifies the bearer token and loads the principal
// into the request context. Requests without a valid token get 401 here;
// authorization decisions stay in the services.
func AuthenticateMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.NewErrorResponse(
				ierr.NewError("missing or malformed authorization header").
					WithHint("Provide a Bearer token").
					Mark(ierr.ErrPermissionDenied)))
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.NewErrorResponse(err))
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.Subject)
		ctx = context.WithValue(ctx, types.CtxUserRole, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
