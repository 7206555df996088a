// Package storage provides image stores backing the upload endpoint.
package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowed upload extensions, keyed by lowercased extension
var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// ErrUnsupportedImageType is returned for uploads that are not a known image format.
var ErrUnsupportedImageType = fmt.Errorf("unsupported image type")

// objectKey builds a collision-free storage key preserving the upload's extension.
func objectKey(name string, now time.Time) (string, error) {
	ext := strings.ToLower(path.Ext(name))
	if _, ok := imageExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImageType, ext)
	}
	return fmt.Sprintf("images/%d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), ext), nil
}

// ContentTypeFor returns the MIME type for a file name, or false for unknown types.
func ContentTypeFor(name string) (string, bool) {
	ct, ok := imageExtensions[strings.ToLower(path.Ext(name))]
	return ct, ok
}
