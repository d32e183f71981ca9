package storage

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	mw.Close()

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestSaveImageToDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/assets/")
	if err != nil {
		t.Fatal(err)
	}
	owner := uuid.New()
	at := time.UnixMilli(1700000000123)

	url, err := SaveImage(context.Background(), store, "products", fileHeader(t, "Photo.PNG", pngHeader), owner, at)
	if err != nil {
		t.Fatal(err)
	}
	want := "/assets/products/" + owner.String() + "-1700000000123.png"
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
	got, err := os.ReadFile(filepath.Join(dir, "products", filepath.Base(url)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pngHeader) {
		t.Errorf("stored %d bytes, want the original upload", len(got))
	}

	if err := store.Remove(context.Background(), url); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "products", filepath.Base(url))); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove: %v", err)
	}
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/assets")
	_, err := SaveImage(context.Background(), store, "products", fileHeader(t, "notes.png", []byte("just text")), uuid.New(), time.Now())
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("err = %v, want ErrNotAnImage", err)
	}
}

func TestSaveImageExtensionFollowsContent(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/assets")
	owner := uuid.New()
	at := time.UnixMilli(1700000000123)
	gif := []byte("GIF89a<html><script>alert(1)</script></html>")

	cases := []struct {
		filename string
		content  []byte
		wantExt  string
	}{
		{"x.html", gif, ".gif"},
		{"photo", pngHeader, ".png"},
		{"scan.JPEG", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), ".jpeg"},
		{"scan.png", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), ".jpg"},
	}
	for _, tc := range cases {
		url, err := SaveImage(context.Background(), store, "products", fileHeader(t, tc.filename, tc.content), owner, at)
		if err != nil {
			t.Fatalf("%s: %v", tc.filename, err)
		}
		if got := filepath.Ext(url); got != tc.wantExt {
			t.Errorf("%s: stored as %q, want extension %s", tc.filename, url, tc.wantExt)
		}
	}
}

func TestSaveImageRejectsOtherImageTypes(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/assets")
	bmp := []byte("BM\x00\x00\x00\x00\x00\x00\x00\x00")
	if _, err := SaveImage(context.Background(), store, "products", fileHeader(t, "icon.bmp", bmp), uuid.New(), time.Now()); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("err = %v, want ErrNotAnImage", err)
	}
}

func TestSaveImageRejectsOversize(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/assets")
	big := append(append([]byte{}, pngHeader...), []byte(strings.Repeat("x", MaxImageSize))...)
	_, err := SaveImage(context.Background(), store, "products", fileHeader(t, "big.png", big), uuid.New(), time.Now())
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestSaveImageRequiresFile(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/assets")
	if _, err := SaveImage(context.Background(), store, "products", nil, uuid.New(), time.Now()); !errors.Is(err, ErrNoFile) {
		t.Fatalf("err = %v, want ErrNoFile", err)
	}
}
