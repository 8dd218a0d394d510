package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/hike"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/response"
)

type HikeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByStaff(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type HikeHandlerImpl struct {
	hikeService hike.HikeService
}

func NewHikeHandler(hikeService hike.HikeService) HikeHandler {
	return &HikeHandlerImpl{hikeService: hikeService}
}

// List implements HikeHandler.
func (h *HikeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.hikeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListByStaff implements HikeHandler.
func (h *HikeHandlerImpl) ListByStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	records, err := h.hikeService.ListByStaff(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Update implements HikeHandler.
func (h *HikeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req hike.UpdateHikeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update hike decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "hikeID")

	updated, err := h.hikeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update hike service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Hike record updated", updated)
}

// Delete implements HikeHandler.
func (h *HikeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "hikeID")

	if err := h.hikeService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete hike service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Hike record deleted", nil)
}
