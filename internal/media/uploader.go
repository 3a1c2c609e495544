// Package media stores uploaded binaries and hands back durable URLs. Only
// the URL string ever reaches the database.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader persists a binary and returns a public URL for it.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskUploader writes files under a local directory served as static content.
// It stands in for an external object store behind the same interface.
type DiskUploader struct {
	dir     string
	baseURL string
}

// NewDiskUploader creates the uploads directory if needed.
func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the stream to disk under a collision-free name.
func (u *DiskUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.New().String() + sanitizeExt(filename)
	path := filepath.Join(u.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}

	return u.baseURL + "/" + name, nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ""
	}
}
