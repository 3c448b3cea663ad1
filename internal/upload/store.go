// Package upload stores book cover images on the local filesystem.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"bookstore-backend/internal/apperr"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads"

// Store writes uploaded images into Dir.
type Store struct {
	Dir      string
	MaxBytes int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &Store{Dir: dir, MaxBytes: maxBytes}, nil
}

// SaveImage stores fh under a random name and returns its public path
// ("/uploads/<name>"). The content type is sniffed from the bytes; anything
// that is not an image is rejected.
func (s *Store) SaveImage(fh *multipart.FileHeader) (string, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return "", apperr.ValidationWithDetails("validation failed",
			map[string]string{"coverImage": fmt.Sprintf("must be at most %d bytes", s.MaxBytes)})
	}
	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal(err, "failed to read upload")
	}
	defer src.Close()
	return s.save(src)
}

func (s *Store) save(src io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", apperr.Internal(err, "failed to read upload")
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", apperr.ValidationWithDetails("validation failed",
			map[string]string{"coverImage": "must be an image"})
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperr.Internal(err, "failed to read upload")
	}

	name := uuid.NewString() + mt.Extension()
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", apperr.Internal(err, "failed to store upload")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", apperr.Internal(err, "failed to store upload")
	}
	if err := dst.Close(); err != nil {
		return "", apperr.Internal(err, "failed to store upload")
	}
	return path.Join(PublicPrefix, name), nil
}
