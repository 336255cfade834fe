package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (*models.User, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return nil, fmt.Errorf("User not authenticated")
	}

	user, ok := value.(*models.User)

	if !ok {
		return nil, fmt.Errorf("Invalid user type in context")
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func GetCurrentToken(ctx *gin.Context) (*models.AuthToken, error) {
	value, exists := ctx.Get(types.ContextTokenKey)

	if !exists {
		return nil, fmt.Errorf("No token in context")
	}

	token, ok := value.(*models.AuthToken)

	if !ok {
		return nil, fmt.Errorf("Invalid token type in context")
	}

	return token, nil
}
