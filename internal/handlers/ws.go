package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/utils"
)

// WebSocket streams refresh events for a project the caller can view.
func (h *Handler) WebSocket(ctx *gin.Context) {
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

	if _, err := h.services.Projects.Find(ctx.Request.Context(), principal, projectID, policy.View); err != nil {
		respondError(ctx, err)
		return
	}

	h.hub.Serve(ctx.Writer, ctx.Request, projectID)
}
