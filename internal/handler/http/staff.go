package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/staff"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/response"
)

type StaffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ResolveChange(w http.ResponseWriter, r *http.Request)
	Reorder(w http.ResponseWriter, r *http.Request)
}

type StaffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &StaffHandlerImpl{staffService: staffService}
}

// Create implements StaffHandler.
func (h *StaffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateStaffRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create staff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.staffService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create staff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff member created", created)
}

// Get implements StaffHandler.
func (h *StaffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "staffID")

	member, err := h.staffService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, member)
}

// List implements StaffHandler.
func (h *StaffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.staffService.List(r.Context())
	if err != nil {
		slog.Error("List staff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}

// Update implements StaffHandler. A compensation change comes back either
// applied or pending classification; the client inspects which.
func (h *StaffHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req staff.UpdateStaffRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update staff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "staffID")

	outcome, err := h.staffService.ProposeCompensationChange(r.Context(), req)
	if err != nil {
		slog.Error("Update staff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if outcome.Pending != nil {
		response.SuccessWithMessage(w, "Compensation change awaiting classification", outcome)
		return
	}
	response.SuccessWithMessage(w, "Staff member updated", outcome)
}

// ResolveChange implements StaffHandler.
func (h *StaffHandlerImpl) ResolveChange(w http.ResponseWriter, r *http.Request) {
	var req staff.ResolveChangeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ResolveChange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.staffService.ResolveCompensationChange(r.Context(), req)
	if err != nil {
		slog.Error("ResolveChange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Compensation change applied", updated)
}

// Reorder implements StaffHandler.
func (h *StaffHandlerImpl) Reorder(w http.ResponseWriter, r *http.Request) {
	var req staff.ReorderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reorder decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.staffService.Reorder(r.Context(), req); err != nil {
		slog.Error("Reorder service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Display order updated", nil)
}
