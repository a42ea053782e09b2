package utils

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lostfound-server/config"
)

// ValidateImageFile validates extension and size against the upload limits
func ValidateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > config.AppConfig.Upload.MaxFileSize {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// EnsureUploadDir creates the upload directory if it does not exist
func EnsureUploadDir() error {
	return os.MkdirAll(config.AppConfig.Upload.Dir, 0o755)
}

// SaveItemImage writes an uploaded image to the upload directory and returns
// the generated filename. File references stored on items are bare filenames;
// the files themselves are served statically under /uploads.
func SaveItemImage(c *gin.Context, h *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(h.Filename))
	filename := fmt.Sprintf("item_%d%s", time.Now().UnixNano(), ext)
	dst := filepath.Join(config.AppConfig.Upload.Dir, filename)
	if err := c.SaveUploadedFile(h, dst); err != nil {
		return "", err
	}
	return filename, nil
}

// DeleteItemImage removes a stored image by filename. Missing files are not an error.
func DeleteItemImage(filename string) {
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return
	}
	path := filepath.Join(config.AppConfig.Upload.Dir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Could not delete image %s: %v", filename, err)
	}
}
