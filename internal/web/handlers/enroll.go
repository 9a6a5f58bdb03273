package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/enroll"
)

// Enroller coordinates a single user enrollment.
type Enroller interface {
	Enroll(ctx context.Context, req enroll.Request) (*enroll.Result, error)
}

// EnrollHandler handles enrollment endpoints.
type EnrollHandler struct {
	enroller Enroller
}

// NewEnrollHandler creates a new enrollment handler.
func NewEnrollHandler(enroller Enroller) *EnrollHandler {
	return &EnrollHandler{enroller: enroller}
}

type enrollRequest struct {
	Name        string `json:"name"`
	Roll        string `json:"roll"`
	UserID      string `json:"userId"`
	Base64Image string `json:"base64Image"`
	ClassLabel  string `json:"classLabel"`
}

// UploadAndEnroll stores the enrollment image, registers it with the training
// backend and upserts the user record. Training registration failure does not
// fail the request; its diagnostic rides along in the response.
func (h *EnrollHandler) UploadAndEnroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	result, err := h.enroller.Enroll(r.Context(), enroll.Request{
		Name:        req.Name,
		Roll:        req.Roll,
		UserID:      req.UserID,
		Base64Image: req.Base64Image,
		ClassLabel:  req.ClassLabel,
	})
	if err != nil {
		switch {
		case errors.Is(err, enroll.ErrMissingFields), errors.Is(err, enroll.ErrBadImage):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("enrollment failed for user %s: %v", sanitizeForLog(req.UserID), err)
			respondError(w, http.StatusInternalServerError, "enrollment failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"user":         result.User,
		"customVision": result.Vision,
	})
}
