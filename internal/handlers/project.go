package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/monocle-dev/tracker/internal/types"
	"github.com/monocle-dev/tracker/internal/utils"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Categories  []uint `json:"categories" binding:"required,min=1"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Categories  []uint  `json:"categories"`
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	var body CreateProjectRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	project, err := h.services.Projects.Create(ctx.Request.Context(), principal, services.ProjectInput{
		Name:        body.Name,
		Description: body.Description,
		Categories:  body.Categories,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.IDResponse{ID: project.ID})
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "project")

	if err != nil {
		respondError(ctx, err)
		return
	}

	project, err := h.services.Projects.Find(ctx.Request.Context(), principal, id, policy.Update)

	if err != nil {
		respondError(ctx, err)
		return
	}

	var body UpdateProjectRequest

	if err := bindJSON(ctx, &body); err != nil {
		respondError(ctx, err)
		return
	}

	err = h.services.Projects.Update(ctx.Request.Context(), project, services.ProjectPatch{
		Name:        body.Name,
		Description: body.Description,
		Categories:  body.Categories,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.IDResponse{ID: project.ID})
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "project")

	if err != nil {
		respondError(ctx, err)
		return
	}

	project, err := h.services.Projects.Find(ctx.Request.Context(), principal, id, policy.Delete)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.services.Projects.Delete(ctx.Request.Context(), project); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) GetProject(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	id, err := utils.GetID(ctx, "id", "project")

	if err != nil {
		respondError(ctx, err)
		return
	}

	project, err := h.services.Projects.Find(ctx.Request.Context(), principal, id, policy.View)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectDetailResponse(*project))
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	principal, err := utils.GetPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated."})
		return
	}

	projects, err := h.services.Projects.List(ctx.Request.Context(), principal)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponses(projects))
}
