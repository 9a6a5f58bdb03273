package cmd

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/blobstore"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/docstore"
	"github.com/kozaktomas/face-attendance/internal/enroll"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// services bundles the wired-up application services shared by the commands.
type services struct {
	cfg        *config.Config
	vision     *vision.Client
	blobs      *blobstore.Client
	users      docstore.UserRepository
	records    docstore.AttendanceRepository
	attendance *attendance.Service
	enroller   *enroll.Coordinator
}

// buildServices loads configuration and constructs the external clients and
// services on top of them. All commands share this bootstrap.
func buildServices() (*services, error) {
	cfg := config.Load()

	if cfg.Vision.PredictionEndpoint == "" {
		return nil, errors.New("CV_PREDICTION_ENDPOINT environment variable is required")
	}
	if cfg.BlobStore.URL == "" {
		return nil, errors.New("BLOB_URL environment variable is required")
	}
	if cfg.DocStore.URL == "" {
		return nil, errors.New("DOCSTORE_URL environment variable is required")
	}

	visionClient, err := vision.NewClient(
		cfg.Vision.PredictionEndpoint,
		cfg.Vision.PredictionKey,
		cfg.Vision.TrainingEndpoint,
		cfg.Vision.TrainingKey,
		cfg.Vision.ProjectID,
		cfg.Vision.PublishedName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	blobs, err := blobstore.NewClient(cfg.BlobStore.URL, cfg.BlobStore.Container, cfg.BlobStore.SASToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store client: %w", err)
	}

	store, err := docstore.NewClient(cfg.DocStore.URL, cfg.DocStore.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store client: %w", err)
	}
	users := docstore.NewUserRepository(store, cfg.DocStore.UsersCollection)
	records := docstore.NewAttendanceRepository(store, cfg.DocStore.AttendanceCollection)

	location, err := cfg.Attendance.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid attendance timezone configuration: %w", err)
	}

	svc := attendance.NewService(users, records, blobs, visionClient, attendance.Options{
		Threshold: cfg.Attendance.Threshold,
		Location:  location,
		Device:    cfg.Attendance.Device,
	})

	return &services{
		cfg:        cfg,
		vision:     visionClient,
		blobs:      blobs,
		users:      users,
		records:    records,
		attendance: svc,
		enroller:   enroll.NewCoordinator(users, blobs, visionClient),
	}, nil
}
