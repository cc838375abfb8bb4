package controllers

import (
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
)

// ImageSaver writes uploaded product images to disk and hands back the
// public path the storefront serves them under. The ledger only ever
// sees that reference string.
type ImageSaver struct {
	dir        string
	publicPath string
}

func NewImageSaver(dir, publicPath string) *ImageSaver {
	return &ImageSaver{dir: dir, publicPath: publicPath}
}

func (s *ImageSaver) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", serviceerrors.NewStorageUnavailableError("creating upload directory", err)
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", serviceerrors.NewStorageUnavailableError("saving uploaded image", err)
	}
	return path.Join(s.publicPath, name), nil
}
