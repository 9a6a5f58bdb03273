// Package enroll orchestrates user enrollment: storing the enrollment image,
// best-effort registration with the training backend, and persisting the
// user record.
package enroll

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kozaktomas/face-attendance/internal/blobstore"
	"github.com/kozaktomas/face-attendance/internal/docstore"
	"github.com/kozaktomas/face-attendance/internal/imaging"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// trainingMaxImageSize bounds the longer image edge before training uploads.
const trainingMaxImageSize = 1600

// ErrMissingFields reports an enrollment request with absent required fields.
var ErrMissingFields = errors.New("name, roll, userId, classLabel, base64Image required")

// ErrBadImage reports an image payload that could not be decoded.
var ErrBadImage = errors.New("invalid base64 image")

// Trainer registers labeled images with the training backend.
type Trainer interface {
	RegisterImage(ctx context.Context, image []byte, tagName string) *vision.RegisterResult
}

// BlobStore stores enrollment images.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Coordinator runs the enrollment flow.
type Coordinator struct {
	users   docstore.UserRepository
	blobs   BlobStore
	trainer Trainer
	now     func() time.Time
}

// NewCoordinator creates an enrollment coordinator.
func NewCoordinator(users docstore.UserRepository, blobs BlobStore, trainer Trainer) *Coordinator {
	return &Coordinator{users: users, blobs: blobs, trainer: trainer, now: time.Now}
}

// Request is one enrollment submission. All fields are required.
// Base64Image may carry a data-URI header.
type Request struct {
	Name        string
	Roll        string
	UserID      string
	Base64Image string
	ClassLabel  string
}

func (r Request) validate() error {
	if r.Name == "" || r.Roll == "" || r.UserID == "" || r.Base64Image == "" || r.ClassLabel == "" {
		return ErrMissingFields
	}
	return nil
}

// Result is the enrollment outcome. Vision carries the training registration
// diagnostic so callers can see partial failure without the call failing.
type Result struct {
	User   *docstore.User
	Vision *vision.RegisterResult
}

// Enroll stores the enrollment image, registers it with the training backend
// best-effort, and upserts the user record. Training-side failure never
// fails the enrollment; it is surfaced in Result.Vision instead.
func (c *Coordinator) Enroll(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	data, err := imaging.DecodeBase64(req.Base64Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	now := c.now()
	blobPath, err := c.blobs.Put(ctx, blobstore.Key("enroll/"+req.UserID, now), data, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("could not store enrollment image: %w", err)
	}

	// Downscale for the training upload; the stored blob keeps the original.
	trainingImage := data
	if scaled, err := imaging.Downscale(data, trainingMaxImageSize); err == nil {
		trainingImage = scaled
	} else {
		log.Printf("enroll: could not downscale training image for %s: %v", req.UserID, err)
	}

	visionResult := c.trainer.RegisterImage(ctx, trainingImage, req.ClassLabel)
	if !visionResult.OK {
		log.Printf("enroll: training registration failed for %s (step=%s): %s",
			req.UserID, visionResult.Step, visionResult.Error)
	}

	// Creation time is immutable across re-enrollments.
	createdAt := now.UTC().Format("2006-01-02T15:04:05Z")
	if existing, err := c.users.GetByID(ctx, req.UserID); err != nil {
		log.Printf("enroll: could not check existing user %s: %v", req.UserID, err)
	} else if existing != nil && existing.CreatedAt != "" {
		createdAt = existing.CreatedAt
	}

	user := &docstore.User{
		ID:             req.UserID,
		UserID:         req.UserID,
		Name:           req.Name,
		Roll:           req.Roll,
		ClassLabel:     req.ClassLabel,
		CreatedAt:      createdAt,
		LastEnrollBlob: blobPath,
	}
	if err := c.users.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return &Result{User: user, Vision: visionResult}, nil
}
