package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/models"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/monocle-dev/tracker/internal/types"
	"github.com/monocle-dev/tracker/internal/utils"
)

type CreateSituationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      *int   `json:"status" binding:"required,situation_status"`
	ProjectID   uint   `json:"project_id" binding:"required"`
}

type UpdateSituationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *int    `json:"status" binding:"omitempty,situation_status"`
}

func (h *Handler) CreateSituation(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	var body CreateSituationRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	situation, err := h.services.Situations.Create(ctx.Request.Context(), principal, services.SituationInput{
		Name:        body.Name,
		Description: body.Description,
		Status:      models.SituationStatus(*body.Status),
		ProjectID:   body.ProjectID,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.IDResponse{ID: situation.ID})
}

// UpdateSituation checks the payload before authorizing, so an invalid
// status is rejected even for callers who could not edit the situation.
func (h *Handler) UpdateSituation(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "situation")

	if err != nil {
		respondError(ctx, err)
		return
	}

	situation, err := h.services.Situations.Resolve(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	var body UpdateSituationRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.services.Situations.Authorize(principal, policy.Update, situation); err != nil {
		respondError(ctx, err)
		return
	}

	patch := services.SituationPatch{Name: body.Name, Description: body.Description}

	if body.Status != nil {
		status := models.SituationStatus(*body.Status)
		patch.Status = &status
	}

	if err := h.services.Situations.Update(ctx.Request.Context(), situation, patch); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.IDResponse{ID: situation.ID})
}

func (h *Handler) DeleteSituation(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "situation")

	if err != nil {
		respondError(ctx, err)
		return
	}

	situation, err := h.services.Situations.Find(ctx.Request.Context(), principal, id, policy.Delete)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.services.Situations.Delete(ctx.Request.Context(), situation); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) GetSituation(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "situation")

	if err != nil {
		respondError(ctx, err)
		return
	}

	situation, err := h.services.Situations.Find(ctx.Request.Context(), principal, id, policy.View)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewSituationResponse(*situation, true))
}

func (h *Handler) ListSituations(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	projectID, err := utils.GetID(ctx, "project_id", "project")

	if err != nil {
		respondError(ctx, err)
		return
	}

	situations, err := h.services.Situations.ListForProject(ctx.Request.Context(), principal, projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewSituationResponses(situations))
}
