package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/lifecycle"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/response"
)

type LifecycleHandler interface {
	Archive(w http.ResponseWriter, r *http.Request)
	Rejoin(w http.ResponseWriter, r *http.Request)
	Purge(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LifecycleHandlerImpl struct {
	lifecycleService lifecycle.LifecycleService
}

func NewLifecycleHandler(lifecycleService lifecycle.LifecycleService) LifecycleHandler {
	return &LifecycleHandlerImpl{lifecycleService: lifecycleService}
}

// Archive implements LifecycleHandler.
func (h *LifecycleHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	var req lifecycle.ArchiveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Archive decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	archived, err := h.lifecycleService.Archive(r.Context(), req)
	if err != nil {
		slog.Error("Archive service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff member archived", archived)
}

// Rejoin implements LifecycleHandler.
func (h *LifecycleHandlerImpl) Rejoin(w http.ResponseWriter, r *http.Request) {
	archiveID := chi.URLParam(r, "archiveID")

	member, err := h.lifecycleService.Rejoin(r.Context(), archiveID)
	if err != nil {
		slog.Error("Rejoin service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff member rejoined", member)
}

// Purge implements LifecycleHandler.
func (h *LifecycleHandlerImpl) Purge(w http.ResponseWriter, r *http.Request) {
	archiveID := chi.URLParam(r, "archiveID")

	if err := h.lifecycleService.Purge(r.Context(), archiveID); err != nil {
		slog.Error("Purge service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff member permanently removed", nil)
}

// List implements LifecycleHandler.
func (h *LifecycleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.lifecycleService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
