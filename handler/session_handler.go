package handler

import (
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetActiveSessionsHandler lists the authenticated user's recorded login
// sessions.
func GetActiveSessionsHandler(c *gin.Context, sessions *services.SessionStore) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	active, err := sessions.Active(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "Failed to load sessions", err.Error())
		return
	}

	utils.Success(c, active)
}
