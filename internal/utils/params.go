package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/internal/apperr"
)

// GetID parses the named path parameter. Anything that is not a positive
// integer cannot name a record, so it is reported as not found.
func GetID(ctx *gin.Context, param, model string) (uint, error) {
	value := ctx.Param(param)

	id, err := strconv.ParseUint(value, 10, 32)

	if err != nil || id == 0 {
		return 0, apperr.NotFound(model)
	}

	return uint(id), nil
}
