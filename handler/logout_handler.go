package handler

import (
	"log"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// LogoutHandler blacklists the presented token and drops its session.
func LogoutHandler(c *gin.Context) {
	token := c.GetString("token")
	sessionID := c.GetString("sessionID")

	if token != "" && services.TokenBlacklist != nil {
		if err := services.TokenBlacklist.BlacklistToken(c.Request.Context(), token); err != nil {
			log.Printf("failed to blacklist token: %v", err)
			utils.InternalError(c, "Failed to log out")
			return
		}
	}

	if sessionID != "" {
		if err := services.GlobalSessionStore.Delete(c.Request.Context(), sessionID); err != nil {
			log.Printf("failed to delete session %s: %v", sessionID, err)
		}
	}

	utils.SuccessMessage(c, "Logged out", nil)
}
