package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/face-attendance/internal/blobstore"
	"github.com/kozaktomas/face-attendance/internal/docstore"
	"github.com/kozaktomas/face-attendance/internal/imaging"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// StatusPresent is the status written on every recognition event.
const StatusPresent = "present"

// ErrBadImage reports an image payload that could not be decoded.
var ErrBadImage = errors.New("invalid base64 image")

// Classifier predicts ranked labels for an image.
type Classifier interface {
	Predict(ctx context.Context, image []byte) ([]vision.Prediction, error)
}

// BlobStore stores captured frames.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service runs the attendance operations: mark, list by day, recent and
// summary. It holds no mutable state; every call reads or writes through
// its collaborators.
type Service struct {
	users      docstore.UserRepository
	records    docstore.AttendanceRepository
	blobs      BlobStore
	classifier Classifier
	threshold  float64
	location   *time.Location
	device     string
	now        func() time.Time
}

// Options configures a Service.
type Options struct {
	Threshold float64
	Location  *time.Location
	Device    string
	Now       func() time.Time // defaults to time.Now
}

// NewService creates an attendance service.
func NewService(users docstore.UserRepository, records docstore.AttendanceRepository, blobs BlobStore, classifier Classifier, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		users:      users,
		records:    records,
		blobs:      blobs,
		classifier: classifier,
		threshold:  opts.Threshold,
		location:   opts.Location,
		device:     opts.Device,
		now:        now,
	}
}

// MarkResult is the outcome of a recognition attempt. Record is set only
// when Outcome is OutcomeMatched.
type MarkResult struct {
	Outcome    Outcome
	Confidence float64
	Record     *docstore.AttendanceRecord
}

// Mark classifies a captured frame and, on a confident match, records an
// attendance event exactly once. The frame is stored regardless of outcome.
// A classifier call failure is an error; a successful call with no or weak
// predictions is a normal outcome.
func (s *Service) Mark(ctx context.Context, base64Image string) (*MarkResult, error) {
	data, err := imaging.DecodeBase64(base64Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	now := s.now()
	blobPath, err := s.blobs.Put(ctx, blobstore.Key("mark", now), data, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("could not store frame: %w", err)
	}

	preds, err := s.classifier.Predict(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	decision, err := Decide(ctx, preds, s.threshold, s.users)
	if err != nil {
		return nil, err
	}

	result := &MarkResult{Outcome: decision.Outcome, Confidence: decision.Confidence}
	if decision.Outcome != OutcomeMatched {
		return result, nil
	}

	record := &docstore.AttendanceRecord{
		ID:            "att-" + uuid.NewString(),
		UserID:        decision.User.UserID,
		Name:          decision.User.Name,
		Timestamp:     now.UTC().Format("2006-01-02T15:04:05Z"),
		Confidence:    decision.Confidence,
		ImageBlobPath: blobPath,
		Device:        s.device,
		Status:        StatusPresent,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("could not write attendance record: %w", err)
	}
	result.Record = record
	return result, nil
}

// DayResult is a day's attendance listing plus the resolved window for
// client display.
type DayResult struct {
	Window Window
	Items  []docstore.AttendanceRecord
}

// ListByDay returns the attendance records of one local calendar day.
// The primary query uses the store's numeric creation time; when it yields
// nothing, a single fallback query filters by the timestamp string instead,
// which accommodates records written under either indexing scheme.
func (s *Service) ListByDay(ctx context.Context, dateStr string) (*DayResult, error) {
	window, err := ResolveDayWindow(dateStr, s.location, s.now())
	if err != nil {
		return nil, err
	}

	items, err := s.records.ListByCreatedRange(ctx, window.FromEpoch(), window.ToEpoch())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items, err = s.records.ListByTimestampRange(ctx, window.FromISO(), window.ToISO())
		if err != nil {
			return nil, err
		}
	}

	return &DayResult{Window: window, Items: items}, nil
}

// Recent returns the latest attendance records, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]docstore.AttendanceRecord, error) {
	return s.records.ListRecent(ctx, limit)
}

// ListUsers returns all enrolled users.
func (s *Service) ListUsers(ctx context.Context) ([]docstore.User, error) {
	return s.users.List(ctx)
}

// CountUsers returns the total number of enrolled users.
func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}
