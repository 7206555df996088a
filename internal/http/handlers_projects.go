package httpx

import (
	"errors"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/data"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
	"github.com/gnwofoke/portfolio-api/internal/service"
)

// ProjectHandlers provides HTTP handlers for portfolio projects.
type ProjectHandlers struct {
	Svc *service.ProjectService
}

// List handles GET /api/projects.
func (h *ProjectHandlers) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("list failed")})
		return
	}
	WriteJSON(w, http.StatusOK, projects)
}

// ListFeatured handles GET /api/projects/featured.
func (h *ProjectHandlers) ListFeatured(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Svc.ListFeatured(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("list failed")})
		return
	}
	WriteJSON(w, http.StatusOK, projects)
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandlers) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrProjectNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("get failed")})
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// Create handles POST /api/projects.
func (h *ProjectHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	// A literal null body decodes cleanly into a nil pointer.
	if req == nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: errors.New("request body is required")})
		return
	}

	project, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrProjectTitleExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, Err: err})
		case apperrors.IsValidation(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("create failed")})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, project)
}

// Update handles PUT /api/projects/{id}.
func (h *ProjectHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	project, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrProjectNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: err})
		case errors.Is(err, data.ErrProjectTitleExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, Err: err})
		case apperrors.IsValidation(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("update failed")})
		}
		return
	}

	WriteJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{id}.
func (h *ProjectHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("delete failed")})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: data.ErrProjectNotFound})
		return
	}
	WriteJSON(w, http.StatusOK, nil)
}
