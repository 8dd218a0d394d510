package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/advance"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/response"
)

type AdvanceHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	GetCarryForward(w http.ResponseWriter, r *http.Request)
	OpenPeriod(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
	ListByStaff(w http.ResponseWriter, r *http.Request)
}

type AdvanceHandlerImpl struct {
	advanceService advance.AdvanceService
}

func NewAdvanceHandler(advanceService advance.AdvanceService) AdvanceHandler {
	return &AdvanceHandlerImpl{advanceService: advanceService}
}

// Upsert implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req advance.UpsertAdvanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert advance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.advanceService.Upsert(r.Context(), req)
	if err != nil {
		slog.Error("Upsert advance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance entry saved", entry)
}

// GetCarryForward implements AdvanceHandler.
func (h *AdvanceHandlerImpl) GetCarryForward(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	month, year, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "month and year must be integers", nil)
		return
	}

	balance, err := h.advanceService.GetCarryForward(r.Context(), staffID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"staff_id":      staffID,
		"month":         month,
		"year":          year,
		"carry_forward": balance,
	})
}

// OpenPeriod implements AdvanceHandler.
func (h *AdvanceHandlerImpl) OpenPeriod(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	month, year, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "month and year must be integers", nil)
		return
	}

	entry, err := h.advanceService.OpenPeriod(r.Context(), staffID, month, year)
	if err != nil {
		slog.Error("OpenPeriod service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if entry == nil {
		response.SuccessWithMessage(w, "No balance to carry forward", nil)
		return
	}
	response.SuccessWithMessage(w, "Period opened", entry)
}

// ListByPeriod implements AdvanceHandler.
func (h *AdvanceHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	month, year, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "month and year must be integers", nil)
		return
	}

	entries, err := h.advanceService.ListByPeriod(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// ListByStaff implements AdvanceHandler.
func (h *AdvanceHandlerImpl) ListByStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")

	entries, err := h.advanceService.ListByStaff(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
