// Package mock provides mock implementations of docstore interfaces for testing.
package mock

import (
	"context"
	"sync"

	"github.com/kozaktomas/face-attendance/internal/docstore"
)

// MockUserRepository is a mock implementation of docstore.UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*docstore.User

	// Error injection
	UpsertError error
	GetError    error
	ListError   error
	CountError  error

	UpsertCalls int
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*docstore.User)}
}

// AddUser seeds a user into the mock store.
func (m *MockUserRepository) AddUser(user docstore.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = &user
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *docstore.User) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls++
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*docstore.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *MockUserRepository) GetByClassLabel(ctx context.Context, label string) (*docstore.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ClassLabel == label {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]docstore.User, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]docstore.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// MockAttendanceRepository is a mock implementation of docstore.AttendanceRepository.
type MockAttendanceRepository struct {
	mu      sync.RWMutex
	records []docstore.AttendanceRecord

	// Query results returned by the range queries. Created/Timestamp ranges
	// are recorded so tests can assert the fallback behavior.
	CreatedRangeResult   []docstore.AttendanceRecord
	TimestampRangeResult []docstore.AttendanceRecord

	// Error injection
	CreateError error
	QueryError  error

	CreatedRangeCalls   int
	TimestampRangeCalls int
	LastCreatedFrom     int64
	LastCreatedTo       int64
	LastTimestampFrom   string
	LastTimestampTo     string
}

// NewMockAttendanceRepository creates a new mock attendance repository.
func NewMockAttendanceRepository() *MockAttendanceRepository {
	return &MockAttendanceRepository{}
}

// Records returns a copy of every record written through Create.
func (m *MockAttendanceRepository) Records() []docstore.AttendanceRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]docstore.AttendanceRecord, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockAttendanceRepository) Create(ctx context.Context, record *docstore.AttendanceRecord) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *MockAttendanceRepository) ListByCreatedRange(ctx context.Context, from, to int64) ([]docstore.AttendanceRecord, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedRangeCalls++
	m.LastCreatedFrom = from
	m.LastCreatedTo = to
	return m.CreatedRangeResult, nil
}

func (m *MockAttendanceRepository) ListByTimestampRange(ctx context.Context, from, to string) ([]docstore.AttendanceRecord, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimestampRangeCalls++
	m.LastTimestampFrom = from
	m.LastTimestampTo = to
	return m.TimestampRangeResult, nil
}

func (m *MockAttendanceRepository) ListRecent(ctx context.Context, limit int) ([]docstore.AttendanceRecord, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.records)
	if limit > n {
		limit = n
	}
	out := make([]docstore.AttendanceRecord, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}
