package handler

import (
	"errors"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates a taxonomy error into the HTTP surface: domain
// errors (bad input, not found, provider failures) surface as 400 with a
// message, everything unclassified as 500.
func respondError(c *gin.Context, err error, fallback string) {
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		utils.InternalError(c, fallback, err.Error())
		return
	}

	switch appErr.Kind {
	case utils.KindInvalidArgument, utils.KindNotFound, utils.KindInvalidToken, utils.KindAuthProvider:
		utils.BadRequest(c, "Invalid request", appErr.Message)
	default:
		utils.InternalError(c, fallback, appErr.Message)
	}
}
