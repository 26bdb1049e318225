package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/monocle-dev/tracker/internal/types"
	"github.com/monocle-dev/tracker/internal/utils"
)

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// targetUserID is the :id parameter, or the caller when it is omitted.
func targetUserID(ctx *gin.Context, self uint) (uint, error) {
	if ctx.Param("id") == "" {
		return self, nil
	}
	return utils.GetID(ctx, "id", "user")
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	var body CreateUserRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	_, err = h.services.Users.Create(ctx.Request.Context(), principal, services.UserInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: types.MessageUserVerification})
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := targetUserID(ctx, principal.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := h.services.Users.Find(ctx.Request.Context(), principal, id, policy.Update)

	if err != nil {
		respondError(ctx, err)
		return
	}

	var body UpdateUserRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	emailChanged, err := h.services.Users.Update(ctx.Request.Context(), user, services.UserPatch{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	if emailChanged {
		ctx.JSON(http.StatusOK, types.MessageResponse{Message: types.MessageUserVerification})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "user")

	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := h.services.Users.Find(ctx.Request.Context(), principal, id, policy.Delete)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.services.Users.Delete(ctx.Request.Context(), user); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) GetUser(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := targetUserID(ctx, principal.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := h.services.Users.Find(ctx.Request.Context(), principal, id, policy.View)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	users, err := h.services.Users.List(ctx.Request.Context(), principal)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponses(users))
}
