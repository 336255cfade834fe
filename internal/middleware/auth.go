package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/auth"
	"github.com/impostor-dev/impostor/internal/types"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := bearerToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failure("Authorization token is required"))
			return
		}

		user, token, err := auth.ResolveToken(db.DB, tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Failure("Invalid or expired token"))
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Set(types.ContextTokenKey, token)
		ctx.Next()
	}
}

// bearerToken extracts the token from the Authorization header, falling back
// to the token cookie set for the server-rendered admin panel.
func bearerToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}
