package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caravane/restaurant-api/models"
	"github.com/caravane/restaurant-api/utils"
)

// RequireRoles rejects requests whose authenticated role is not listed.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}
		if !allowed[role.(string)] {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff allows WAITER, CHEF, MANAGER and ADMIN.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(models.RoleWaiter, models.RoleChef, models.RoleManager, models.RoleAdmin)
}

// RequireManager allows MANAGER and ADMIN.
func RequireManager() gin.HandlerFunc {
	return RequireRoles(models.RoleManager, models.RoleAdmin)
}

// RequireAdmin allows ADMIN only.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}
