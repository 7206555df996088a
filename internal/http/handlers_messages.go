package httpx

import (
	"errors"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/data"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
	"github.com/gnwofoke/portfolio-api/internal/service"
)

// MessageHandlers provides HTTP handlers for contact messages.
type MessageHandlers struct {
	Svc *service.MessageService
}

// Submit handles POST /api/contact from the public site.
func (h *MessageHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	// A literal null body decodes cleanly into a nil pointer.
	if req == nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: errors.New("request body is required")})
		return
	}

	msg, err := h.Svc.Submit(r.Context(), req)
	if err != nil {
		if apperrors.IsValidation(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("submit failed")})
		return
	}

	WriteJSON(w, http.StatusCreated, msg)
}

// List handles GET /api/contact (admin inbox).
func (h *MessageHandlers) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("list failed")})
		return
	}
	WriteJSON(w, http.StatusOK, messages)
}

// MarkRead handles PUT /api/contact/{id}/read.
func (h *MessageHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Svc.MarkRead(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrMessageNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("update failed")})
		return
	}
	WriteJSON(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/contact/{id}.
func (h *MessageHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("delete failed")})
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, Err: data.ErrMessageNotFound})
		return
	}
	WriteJSON(w, http.StatusOK, nil)
}
