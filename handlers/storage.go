// File: handlers/storage.go
package handlers

import (
	"net/http"
	"strings"

	"foodsavvy/services/storage"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 5 << 20 // 5MB

// UploadImageHandler stores a menu image and returns its URL. Only image
// content types up to 5MB are accepted.
func UploadImageHandler(svc storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "missing image", "multipart field 'image' is required")
			return
		}
		if fileHeader.Size > maxUploadBytes {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, "image too large", "images are limited to 5MB")
			return
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			utils.JSONError(c, http.StatusBadRequest, "unsupported file type", contentType)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to read upload", err.Error())
			return
		}
		defer file.Close()

		url, err := svc.SaveImage(c.Request.Context(), file, fileHeader.Filename)
		if err != nil {
			getLogger(c).Error("Failed to store image", zap.String("filename", fileHeader.Filename), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to store image", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
