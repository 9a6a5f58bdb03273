package docstore

import "context"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Upsert inserts or replaces a user document by id.
	Upsert(ctx context.Context, user *User) error
	// GetByID retrieves a user by id. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByClassLabel retrieves the user whose classLabel equals the given
	// tag name. Returns nil when absent.
	GetByClassLabel(ctx context.Context, label string) (*User, error)
	// List retrieves all enrolled users.
	List(ctx context.Context) ([]User, error)
	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)
}

// AttendanceRepository defines the interface for attendance data access.
type AttendanceRepository interface {
	// Create writes a new attendance record.
	Create(ctx context.Context, record *AttendanceRecord) error
	// ListByCreatedRange retrieves records whose numeric creation time falls
	// in [from, to), newest first.
	ListByCreatedRange(ctx context.Context, from, to int64) ([]AttendanceRecord, error)
	// ListByTimestampRange retrieves records whose timestamp string falls in
	// [from, to), newest first.
	ListByTimestampRange(ctx context.Context, from, to string) ([]AttendanceRecord, error)
	// ListRecent retrieves the latest records by creation time, newest first.
	ListRecent(ctx context.Context, limit int) ([]AttendanceRecord, error)
}
