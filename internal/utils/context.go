package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/middleware"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetPrincipal(ctx *gin.Context) (policy.Principal, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return policy.Principal{}, err
	}

	return user.Principal(), nil
}
