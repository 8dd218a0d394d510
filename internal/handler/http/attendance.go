package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/attendance"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	BulkRecord(w http.ResponseWriter, r *http.Request)
	DeletePartTime(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Record implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rec, err := h.attendanceService.Record(r.Context(), req)
	if err != nil {
		slog.Error("Record attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if rec.Deleted {
		response.SuccessWithMessage(w, "Part-time attendance entry removed", rec)
		return
	}
	response.SuccessWithMessage(w, "Attendance recorded", rec)
}

// BulkRecord implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BulkRecord(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkRecordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	records, err := h.attendanceService.BulkRecord(r.Context(), req)
	if err != nil {
		slog.Error("BulkRecord service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded", records)
}

// DeletePartTime implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeletePartTime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordID")

	if err := h.attendanceService.DeletePartTime(r.Context(), id); err != nil {
		slog.Error("DeletePartTime service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

// ListByDate implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	records, err := h.attendanceService.ListByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListByPeriod implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	month, year, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "month and year must be integers", nil)
		return
	}

	filter := attendance.PeriodFilter{
		StaffID: r.URL.Query().Get("staff_id"),
		Month:   month,
		Year:    year,
	}

	records, err := h.attendanceService.ListByPeriod(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// periodParams parses the month/year query pair shared by period endpoints.
func periodParams(r *http.Request) (month, year int, ok bool) {
	var err error
	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}
