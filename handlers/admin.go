// File: handlers/admin.go
package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"foodsavvy/config"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 8 * time.Hour

// AdminLoginHandler exchanges the configured admin credentials for a
// short-lived JWT. ADMIN_PASSWORD_HASH (bcrypt) wins over the plain
// ADMIN_PASSWORD when both are set.
func AdminLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		cfg := config.AppConfig
		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1

		passOK := false
		switch {
		case cfg.AdminPasswordHash != "":
			passOK = bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password)) == nil
		case cfg.AdminPassword != "":
			passOK = subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.AdminPassword)) == 1
		}

		if !userOK || !passOK {
			getLogger(c).Warn("Admin login rejected", zap.String("username", req.Username))
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}

		token, err := utils.GenerateToken(req.Username, adminTokenTTL)
		if err != nil {
			getLogger(c).Error("Failed to issue admin token", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(adminTokenTTL.Seconds())})
	}
}
