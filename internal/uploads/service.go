package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Service stores uploaded images on local disk.
type Service struct {
	dir      string
	maxBytes int64
}

// NewService builds a Service writing into dir. The directory is created on
// first use if missing.
func NewService(dir string, maxBytes int64) *Service {
	return &Service{dir: dir, maxBytes: maxBytes}
}

// allowedTypes maps accepted image content types to their extension, used
// when the client filename carries none.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// allowedExts whitelists the extensions a stored file may carry. The client
// filename is untrusted; anything outside this set falls back to the
// extension implied by the content type.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Save persists the uploaded file under a UUID-prefixed name and returns the
// public path it will be served from.
func (s *Service) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", shared.Validation(fmt.Sprintf("File exceeds the %d MB limit.", s.maxBytes/(1024*1024)))
	}
	contentType := header.Header.Get("Content-Type")
	fallbackExt, ok := allowedTypes[contentType]
	if !ok {
		return "", shared.Validation("Only image uploads are allowed.")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		ext = fallbackExt
	}
	name := uuid.NewString() + ext

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", shared.Internal("upload directory unavailable", err)
	}
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", shared.Internal("upload write failed", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxBytes+1)); err != nil {
		return "", shared.Internal("upload write failed", err)
	}
	return "/upload/" + name, nil
}

// Dir returns the storage directory, for static file serving.
func (s *Service) Dir() string {
	return s.dir
}
