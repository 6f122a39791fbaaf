package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hairday/internal/models/db_models"
	"hairday/pkg/utils"
)

// SessionValidator is implemented by the admin service; declared here
// so the middleware does not depend on the service package.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*db_models.AdminUser, error)
}

func AdminSessionMiddleware(validator SessionValidator) gin.HandlerFunc {

	return func(c *gin.Context) {
		token := c.GetHeader("X-Session-Token")
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, "X-Session-Token header missing")
			c.Abort()
			return
		}

		admin, err := validator.ValidateSession(c.Request.Context(), token)
		if err != nil {
			// Missing and expired sessions are rejected identically.
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set("admin_email", admin.Email)
		c.Next()
	}
}
