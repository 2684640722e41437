package middleware

import (
	"net/http"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// RequireAdmin checks that the authenticated user has the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != string(domain.RoleAdmin) {
			common.Error(c, http.StatusForbidden, "Admin privileges required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
