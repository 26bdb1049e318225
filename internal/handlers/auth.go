package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/auth"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/monocle-dev/tracker/internal/types"
	"github.com/monocle-dev/tracker/internal/utils"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(ctx *gin.Context) {
	var body CreateUserRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	_, err := h.services.Auth.Register(ctx.Request.Context(), services.UserInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: types.MessageVerificationSent})
}

func (h *Handler) Login(ctx *gin.Context) {
	var body LoginUserRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	token, err := h.services.Auth.Login(ctx.Request.Context(), body.Email, body.Password)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{AccessToken: token, TokenType: auth.TokenType})
}

func (h *Handler) Logout(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	if err := h.services.Auth.Logout(ctx.Request.Context(), user.TokenID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) VerificationNotice(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.MessageResponse{Message: types.MessageVerificationLink})
}

func (h *Handler) VerifyEmail(ctx *gin.Context) {
	err := h.services.Auth.VerifyEmail(ctx.Request.Context(), ctx.Param("id"), ctx.Param("hash"), ctx.Query("signature"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: types.MessageEmailVerified})
}

func (h *Handler) ResendVerification(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	h.services.Auth.SendVerification(user.Model())

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: types.MessageVerificationLink})
}
