package httpx

import (
	"errors"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/data"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
	"github.com/gnwofoke/portfolio-api/internal/service"
)

// SkillHandlers provides HTTP handlers for skills.
type SkillHandlers struct {
	Svc *service.SkillService
}

// List handles GET /api/skills.
func (h *SkillHandlers) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("list failed")})
		return
	}
	WriteJSON(w, http.StatusOK, skills)
}

// Create handles POST /api/skills.
func (h *SkillHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateSkillRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	// A literal null body decodes cleanly into a nil pointer.
	if req == nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: errors.New("request body is required")})
		return
	}

	skill, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrSkillNameExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, Err: err})
		case apperrors.IsValidation(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("create failed")})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, skill)
}

// Update handles PUT /api/skills/{id}.
func (h *SkillHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSkillRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	skill, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrSkillNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: err})
		case errors.Is(err, data.ErrSkillNameExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, Err: err})
		case apperrors.IsValidation(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("update failed")})
		}
		return
	}

	WriteJSON(w, http.StatusOK, skill)
}

// Delete handles DELETE /api/skills/{id}.
func (h *SkillHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("delete failed")})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: data.ErrSkillNotFound})
		return
	}
	WriteJSON(w, http.StatusOK, nil)
}
