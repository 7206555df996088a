package httpx

import (
	"errors"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/data"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
	"github.com/gnwofoke/portfolio-api/internal/service"
)

// BlogHandlers provides HTTP handlers for blog posts.
type BlogHandlers struct {
	Svc *service.BlogService
}

// ListPublished handles GET /api/blog/published.
func (h *BlogHandlers) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Svc.ListPublished(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("list failed")})
		return
	}
	WriteJSON(w, http.StatusOK, posts)
}

// ListAll handles GET /api/blog (drafts included, admin only).
func (h *BlogHandlers) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("list failed")})
		return
	}
	WriteJSON(w, http.StatusOK, posts)
}

// GetBySlug handles GET /api/blog/post/{slug} and returns the rendered post.
func (h *BlogHandlers) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.Svc.GetPublishedBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, data.ErrPostNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("get failed")})
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// Get handles GET /api/blog/{id} (admin only, drafts included).
func (h *BlogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrPostNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("get failed")})
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// Create handles POST /api/blog.
func (h *BlogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateBlogPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	// A literal null body decodes cleanly into a nil pointer.
	if req == nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: errors.New("request body is required")})
		return
	}

	post, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrPostSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, Err: err})
		case apperrors.IsValidation(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("create failed")})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, post)
}

// Update handles PUT /api/blog/{id}.
func (h *BlogHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateBlogPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrPostNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: err})
		case errors.Is(err, data.ErrPostSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, Err: err})
		case apperrors.IsValidation(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("update failed")})
		}
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/blog/{id}.
func (h *BlogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("delete failed")})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: data.ErrPostNotFound})
		return
	}
	WriteJSON(w, http.StatusOK, nil)
}
