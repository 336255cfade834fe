package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/impostor-dev/impostor/internal/config"
)

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// StoreAvatar saves an uploaded avatar under the configured directory with a
// random filename and returns its storage path and public URL.
func StoreAvatar(ctx *gin.Context, file *multipart.FileHeader) (path string, url string, err error) {
	cfg := config.Active

	if file.Size > cfg.AvatarMaxBytes {
		return "", "", fmt.Errorf("avatar exceeds the %d byte limit", cfg.AvatarMaxBytes)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))

	if !allowedAvatarExtensions[ext] {
		return "", "", fmt.Errorf("unsupported avatar format %q", ext)
	}

	if err := os.MkdirAll(cfg.AvatarDir, 0o755); err != nil {
		return "", "", err
	}

	name := uuid.NewString() + ext
	path = filepath.Join(cfg.AvatarDir, name)

	if err := ctx.SaveUploadedFile(file, path); err != nil {
		return "", "", err
	}

	return path, "/storage/avatars/" + name, nil
}

// RemoveAvatar deletes a previously stored avatar file. A missing file is
// not an error.
func RemoveAvatar(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return
	}
}
