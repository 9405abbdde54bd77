package controller

import (
	"errors"
	"strconv"

	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto the envelope: lookup failures
// become 404, ownership and access failures 403, rule violations 400 and
// everything else 500.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case util.IsNotFound(err):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrExamNotForClass):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Fail(ctx, 401, err.Error())
	case util.IsBusinessRule(err):
		util.BadRequest(ctx, err.Error())
	default:
		util.InternalServerError(ctx, err)
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}
