package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/attendance"
)

// Recognizer classifies a captured frame and records a match.
type Recognizer interface {
	Mark(ctx context.Context, base64Image string) (*attendance.MarkResult, error)
}

// RecognizeHandler handles the attendance marking endpoint.
type RecognizeHandler struct {
	recognizer Recognizer
}

// NewRecognizeHandler creates a new recognition handler.
func NewRecognizeHandler(recognizer Recognizer) *RecognizeHandler {
	return &RecognizeHandler{recognizer: recognizer}
}

type markRequest struct {
	Base64Image string `json:"base64Image"`
}

// MarkAttendance classifies the submitted frame and, on a confident match,
// writes an attendance record. No-match outcomes are 200 responses with a
// reason, not errors.
func (h *RecognizeHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Base64Image == "" {
		respondError(w, http.StatusBadRequest, "base64Image is required")
		return
	}

	result, err := h.recognizer.Mark(r.Context(), req.Base64Image)
	if err != nil {
		if errors.Is(err, attendance.ErrBadImage) {
			respondError(w, http.StatusBadRequest, attendance.ErrBadImage.Error())
			return
		}
		log.Printf("attendance marking failed: %v", err)
		respondError(w, http.StatusInternalServerError, "recognition failed")
		return
	}

	switch result.Outcome {
	case attendance.OutcomeMatched:
		record := result.Record
		respondJSON(w, http.StatusOK, map[string]any{
			"ok":            true,
			"id":            record.ID,
			"userId":        record.UserID,
			"name":          record.Name,
			"timestamp":     record.Timestamp,
			"confidence":    record.Confidence,
			"imageBlobPath": record.ImageBlobPath,
			"device":        record.Device,
			"status":        record.Status,
		})
	case attendance.OutcomeLowConfidence:
		respondJSON(w, http.StatusOK, map[string]any{
			"ok":         false,
			"reason":     string(result.Outcome),
			"confidence": result.Confidence,
		})
	default:
		respondJSON(w, http.StatusOK, map[string]any{
			"ok":     false,
			"reason": string(result.Outcome),
		})
	}
}
