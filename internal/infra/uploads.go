package infra

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PublicUploadsPrefix is the URL prefix the uploads directory is served under.
const PublicUploadsPrefix = "/uploads"

var (
	ErrUnsupportedImage = errors.New("only jpg, jpeg, png, gif and webp images are allowed")
	ErrImageTooLarge    = errors.New("image is too large")
)

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Uploads stores images on local disk below dir/<kind>/ with random names
// and returns the public path ("/uploads/<kind>/<file>") saved on the row.
type Uploads struct {
	dir      string
	maxBytes int64
}

func NewUploads(dir string, maxMB int) *Uploads {
	return &Uploads{dir: dir, maxBytes: int64(maxMB) << 20}
}

func (u *Uploads) Dir() string { return u.dir }

// SaveImage validates the extension and size of fh and writes it to disk.
func (u *Uploads) SaveImage(c *gin.Context, kind string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return "", ErrUnsupportedImage
	}
	if u.maxBytes > 0 && fh.Size > u.maxBytes {
		return "", fmt.Errorf("%w (max %d MB)", ErrImageTooLarge, u.maxBytes>>20)
	}

	target := filepath.Join(u.dir, kind)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("uploads: create dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(fh, filepath.Join(target, name)); err != nil {
		return "", fmt.Errorf("uploads: save file: %w", err)
	}
	return path.Join(PublicUploadsPrefix, kind, name), nil
}

// Remove deletes a file previously returned by SaveImage. Unknown paths are
// ignored.
func (u *Uploads) Remove(publicPath string) {
	rel, ok := strings.CutPrefix(publicPath, PublicUploadsPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return
	}
	_ = os.Remove(filepath.Join(u.dir, filepath.FromSlash(rel)))
}
