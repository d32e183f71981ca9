// Package storage persists uploaded product and resell images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20

var (
	ErrNoFile     = errors.New("no image file uploaded")
	ErrTooLarge   = errors.New("image exceeds 5MB")
	ErrNotAnImage = errors.New("only image uploads are allowed")
)

// imageExts lists the accepted image types and the file extensions each may
// be stored under. The first one is used when the upload's own name does not fit.
var imageExts = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

// ImageStore saves an object under name and returns the URL it is served at.
type ImageStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, url string) error
}

// SaveImage validates an uploaded image and stores it in folder as
// <ownerID>-<unix millis><ext>. The extension always matches the sniffed
// content type, whatever the client named the file.
func SaveImage(ctx context.Context, store ImageStore, folder string, fh *multipart.FileHeader, ownerID uuid.UUID, now time.Time) (string, error) {
	if fh == nil {
		return "", ErrNoFile
	}
	if fh.Size > MaxImageSize {
		return "", ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	exts, ok := imageExts[contentType]
	if !ok {
		return "", ErrNotAnImage
	}
	ext := exts[0]
	if want := strings.ToLower(filepath.Ext(fh.Filename)); slices.Contains(exts, want) {
		ext = want
	}

	name := fmt.Sprintf("%s/%s-%d%s", folder, ownerID, now.UnixMilli(), ext)
	body := io.MultiReader(bytes.NewReader(head), f)
	return store.Put(ctx, name, contentType, body, fh.Size)
}
