package upload

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-backend/internal/apperr"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("coverImage", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["coverImage"][0]
}

func TestSaveImage_StoresPNG(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, 1<<20)
	require.NoError(t, err)

	public, err := s.SaveImage(fileHeader(t, "cover.png", pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(public, "/uploads/"))
	assert.True(t, strings.HasSuffix(public, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(public, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestSaveImage_RejectsNonImage(t *testing.T) {
	s, err := NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = s.SaveImage(fileHeader(t, "cover.png", []byte("just some text pretending to be a png")))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSaveImage_RejectsOversized(t *testing.T) {
	s, err := NewStore(t.TempDir(), 8)
	require.NoError(t, err)

	_, err = s.SaveImage(fileHeader(t, "cover.png", pngHeader))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNewStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewStore(dir, 0)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
