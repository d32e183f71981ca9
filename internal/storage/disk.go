package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore writes into a directory that the router serves under URLPrefix.
type DiskStore struct {
	Dir       string
	URLPrefix string
}

func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (d *DiskStore) Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	rel := path.Clean("/" + name)[1:]
	target := filepath.Join(d.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return d.URLPrefix + "/" + rel, nil
}

// Remove deletes the file behind a URL returned by Put. Missing files are ignored.
func (d *DiskStore) Remove(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, d.URLPrefix+"/")
	if !ok {
		return nil
	}
	rel = path.Clean("/" + rel)[1:]
	err := os.Remove(filepath.Join(d.Dir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
