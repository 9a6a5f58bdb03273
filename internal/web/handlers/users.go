package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/docstore"
)

// UserDirectory reads the enrolled user roster.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]docstore.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// UsersHandler handles user roster endpoints.
type UsersHandler struct {
	directory UserDirectory
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(directory UserDirectory) *UsersHandler {
	return &UsersHandler{directory: directory}
}

// List returns all enrolled users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.ListUsers(r.Context())
	if err != nil {
		log.Printf("user listing failed: %v", err)
		respondError(w, http.StatusInternalServerError, "user listing failed")
		return
	}
	if users == nil {
		users = []docstore.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// Summary returns aggregate roster numbers.
func (h *UsersHandler) Summary(w http.ResponseWriter, r *http.Request) {
	total, err := h.directory.CountUsers(r.Context())
	if err != nil {
		log.Printf("user summary failed: %v", err)
		respondError(w, http.StatusInternalServerError, "user summary failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"totalUsers": total,
	})
}
