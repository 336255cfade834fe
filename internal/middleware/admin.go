package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/internal/types"
	"github.com/impostor-dev/impostor/internal/utils"
)

// AdminMiddleware gates a route group to admin accounts. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failure("User not authenticated"))
			return
		}

		if !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, types.Failure("Admin access required"))
			return
		}

		ctx.Next()
	}
}
