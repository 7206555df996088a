package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnwofoke/portfolio-api/internal/core"
)

// LocalStore writes uploaded images to a directory on disk. The directory is
// expected to be served under baseURL by the HTTP layer.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Put stores the image and returns the URL path it will be served from.
func (s *LocalStore) Put(ctx context.Context, params core.PutImageParams) (string, error) {
	key, err := objectKey(params.Name, time.Now())
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if mkErr := os.MkdirAll(filepath.Dir(dst), 0o755); mkErr != nil {
		return "", fmt.Errorf("create image directory: %w", mkErr)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	_, copyErr := io.Copy(f, params.Body)
	closeErr := f.Close()
	if copyErr != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write image: %w", copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close image file: %w", closeErr)
	}

	return s.baseURL + "/" + key, nil
}
