package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/monocle-dev/tracker/internal/types"
	"github.com/monocle-dev/tracker/internal/utils"
)

// CategoryRequest is used for both create and full replace.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) CreateCategory(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	var body CategoryRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	category, err := h.services.Categories.Create(ctx.Request.Context(), principal, services.CategoryInput{
		Name:        body.Name,
		Description: body.Description,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.IDResponse{ID: category.ID})
}

func (h *Handler) UpdateCategory(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "category")

	if err != nil {
		respondError(ctx, err)
		return
	}

	category, err := h.services.Categories.Find(ctx.Request.Context(), principal, id, policy.Update)

	if err != nil {
		respondError(ctx, err)
		return
	}

	var body CategoryRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	err = h.services.Categories.Replace(ctx.Request.Context(), category, services.CategoryInput{
		Name:        body.Name,
		Description: body.Description,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) DeleteCategory(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "category")

	if err != nil {
		respondError(ctx, err)
		return
	}

	category, err := h.services.Categories.Find(ctx.Request.Context(), principal, id, policy.Delete)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.services.Categories.Delete(ctx.Request.Context(), category); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) GetCategory(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "category")

	if err != nil {
		respondError(ctx, err)
		return
	}

	category, err := h.services.Categories.Find(ctx.Request.Context(), principal, id, policy.View)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewCategoryResponse(*category))
}

func (h *Handler) ListCategories(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	categories, err := h.services.Categories.List(ctx.Request.Context(), principal)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewCategoryResponses(categories))
}
