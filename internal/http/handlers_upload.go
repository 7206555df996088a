package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/storage"
)

// UploadHandlers provides the admin image upload endpoint.
type UploadHandlers struct {
	Store    core.ImageStore
	MaxBytes int64
	Logger   *slog.Logger
}

// Upload handles POST /api/upload with a multipart "image" field and returns
// the URL the stored image is served from.
func (h *UploadHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: errors.New("invalid multipart form")})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: errors.New("image field is required")})
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && h.Logger != nil {
			h.Logger.Warn("close upload", slog.Any("error", closeErr))
		}
	}()

	url, err := h.Store.Put(r.Context(), core.PutImageParams{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImageType) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("image upload failed", slog.Any("error", err))
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("upload failed")})
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}
