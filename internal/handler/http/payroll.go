package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/payroll"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	ForStaff(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Summary implements PayrollHandler.
func (h *PayrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "month and year must be integers", nil)
		return
	}

	breakdowns, err := h.payrollService.Summary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdowns)
}

// ForStaff implements PayrollHandler.
func (h *PayrollHandlerImpl) ForStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	month, year, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "month and year must be integers", nil)
		return
	}

	breakdown, err := h.payrollService.ForStaff(r.Context(), staffID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdown)
}
