package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/monocle-dev/tracker/internal/types"
)

type AuthenticatedUser struct {
	ID              uint        `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Role            models.Role `json:"role"`
	EmailVerifiedAt *time.Time  `json:"email_verified_at"`
	TokenID         uint        `json:"-"`
}

func (u AuthenticatedUser) Principal() policy.Principal {
	return policy.Principal{ID: u.ID, Role: u.Role}
}

func (u AuthenticatedUser) HasVerifiedEmail() bool {
	return u.EmailVerifiedAt != nil
}

// Model rebuilds the user record the token belongs to.
func (u AuthenticatedUser) Model() *models.User {
	return &models.User{
		BaseModel:       models.BaseModel{ID: u.ID},
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		EmailVerifiedAt: u.EmailVerifiedAt,
	}
}

func abort(ctx *gin.Context, err error) {
	appErr := apperr.From(err)
	ctx.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}

// AuthMiddleware resolves the bearer token to a user. Websocket upgrades may
// pass the token as the "token" query parameter instead.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		tokenString := ""

		switch {
		case authHeader != "":
			parts := strings.SplitN(authHeader, " ", 2)

			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				abort(ctx, apperr.Unauthenticated("Authorization header format must be Bearer {token}"))
				return
			}

			tokenString = strings.TrimSpace(parts[1])
		case websocket.IsWebSocketUpgrade(ctx.Request):
			tokenString = ctx.Query("token")
		}

		if tokenString == "" {
			abort(ctx, apperr.Unauthenticated("Unauthenticated."))
			return
		}

		user, token, err := authService.Authenticate(ctx.Request.Context(), tokenString)

		if err != nil {
			abort(ctx, err)
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:              user.ID,
			Name:            user.Name,
			Email:           user.Email,
			Role:            user.Role,
			EmailVerifiedAt: user.EmailVerifiedAt,
			TokenID:         token.ID,
		})
		ctx.Next()
	}
}

// EnsureEmailVerified rejects users that have not verified their email yet.
func EnsureEmailVerified() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)
		user, ok := value.(AuthenticatedUser)

		if !exists || !ok {
			abort(ctx, apperr.Unauthenticated("Unauthenticated."))
			return
		}

		if !user.HasVerifiedEmail() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": types.MessageNotVerified})
			return
		}

		ctx.Next()
	}
}
