package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/docstore"
)

// recentLimit caps the attendanceRecent listing.
const recentLimit = 50

// AttendanceLister reads recorded attendance.
type AttendanceLister interface {
	ListByDay(ctx context.Context, dateStr string) (*attendance.DayResult, error)
	Recent(ctx context.Context, limit int) ([]docstore.AttendanceRecord, error)
}

// AttendanceHandler handles attendance query endpoints.
type AttendanceHandler struct {
	lister AttendanceLister
}

// NewAttendanceHandler creates a new attendance query handler.
func NewAttendanceHandler(lister AttendanceLister) *AttendanceHandler {
	return &AttendanceHandler{lister: lister}
}

// GetAttendance lists one local calendar day's records. The date query
// parameter accepts YYYY-MM-DD or DD-MM-YYYY and defaults to today.
func (h *AttendanceHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.lister.ListByDay(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, attendance.ErrInvalidDate) {
			respondError(w, http.StatusBadRequest, attendance.ErrInvalidDate.Error())
			return
		}
		log.Printf("attendance query failed: %v", err)
		respondError(w, http.StatusInternalServerError, "attendance query failed")
		return
	}

	items := result.Items
	if items == nil {
		items = []docstore.AttendanceRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"range": map[string]string{
			"tz":        result.Window.TZName,
			"localDate": result.Window.LocalDate,
			"utcFrom":   result.Window.FromISO(),
			"utcTo":     result.Window.ToISO(),
		},
		"count": len(items),
		"items": items,
	})
}

// Recent lists the latest records by creation time, newest first.
func (h *AttendanceHandler) Recent(w http.ResponseWriter, r *http.Request) {
	items, err := h.lister.Recent(r.Context(), recentLimit)
	if err != nil {
		log.Printf("recent attendance query failed: %v", err)
		respondError(w, http.StatusInternalServerError, "attendance query failed")
		return
	}
	if items == nil {
		items = []docstore.AttendanceRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"count": len(items),
		"items": items,
	})
}
