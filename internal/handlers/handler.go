package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/monocle-dev/tracker/internal/apperr"
	"github.com/monocle-dev/tracker/internal/realtime"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/monocle-dev/tracker/internal/validation"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	services *services.Services
	hub      *realtime.Hub
}

func New(svc *services.Services, hub *realtime.Hub) *Handler {
	validation.Setup()
	return &Handler{services: svc, hub: hub}
}

func respondError(ctx *gin.Context, err error) {
	appErr := apperr.From(err)

	if appErr.Code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("request failed")
	}

	ctx.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}

// bindJSON decodes and validates the request body. An empty body is treated
// as an empty object so partial updates may send nothing.
func bindJSON(ctx *gin.Context, obj any) error {
	if ctx.Request.Body == nil || ctx.Request.ContentLength == 0 {
		if err := binding.Validator.ValidateStruct(obj); err != nil {
			return apperr.Validation(validation.Message(err))
		}
		return nil
	}

	if err := ctx.ShouldBindJSON(obj); err != nil {
		return apperr.Validation(validation.Message(err))
	}

	return nil
}
