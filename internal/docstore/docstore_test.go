package docstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(server.URL, "test-token")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestUserRepo_Upsert_UpdatesExisting(t *testing.T) {
	var patched bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch && r.URL.Path == "/api/collections/users/records/u1" {
			patched = true
			if r.Header.Get("Authorization") != "test-token" {
				t.Errorf("missing auth header")
			}
			json.NewEncoder(w).Encode(User{ID: "u1"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	repo := NewUserRepository(newTestClient(t, server), "users")
	err := repo.Upsert(context.Background(), &User{ID: "u1", Name: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patched {
		t.Error("expected PATCH request")
	}
}

func TestUserRepo_Upsert_CreatesOnNotFound(t *testing.T) {
	var created bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch:
			http.NotFound(w, r)
		case r.Method == http.MethodPost && r.URL.Path == "/api/collections/users/records":
			created = true
			var u User
			json.NewDecoder(r.Body).Decode(&u)
			if u.ID != "u1" {
				t.Errorf("expected id u1 in create body, got %q", u.ID)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(u)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	repo := NewUserRepository(newTestClient(t, server), "users")
	err := repo.Upsert(context.Background(), &User{ID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected POST fallback after 404")
	}
}

func TestUserRepo_GetByClassLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		if filter != "classLabel='alice'" {
			t.Errorf("unexpected filter: %q", filter)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items":      []User{{ID: "u1", ClassLabel: "alice"}},
			"totalItems": 1,
		})
	}))
	defer server.Close()

	repo := NewUserRepository(newTestClient(t, server), "users")
	user, err := repo.GetByClassLabel(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.ID != "u1" {
		t.Errorf("expected user u1, got %+v", user)
	}
}

func TestUserRepo_GetByClassLabel_Absent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []User{}, "totalItems": 0})
	}))
	defer server.Close()

	repo := NewUserRepository(newTestClient(t, server), "users")
	user, err := repo.GetByClassLabel(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for absent label, got %+v", user)
	}
}

func TestUserRepo_Count(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items":      []User{{ID: "u1"}},
			"totalItems": 42,
		})
	}))
	defer server.Close()

	repo := NewUserRepository(newTestClient(t, server), "users")
	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
}

func TestAttendanceRepo_ListByCreatedRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("filter") != "created >= 100 && created < 200" {
			t.Errorf("unexpected filter: %q", q.Get("filter"))
		}
		if q.Get("sort") != "-created" {
			t.Errorf("expected descending sort, got %q", q.Get("sort"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items":      []AttendanceRecord{{ID: "att-1"}},
			"totalItems": 1,
		})
	}))
	defer server.Close()

	repo := NewAttendanceRepository(newTestClient(t, server), "attendance")
	items, err := repo.ListByCreatedRange(context.Background(), 100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "att-1" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestAttendanceRepo_ListByTimestampRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		want := "timestamp >= '2024-02-14T18:30:00Z' && timestamp < '2024-02-15T18:30:00Z'"
		if q.Get("filter") != want {
			t.Errorf("unexpected filter: %q", q.Get("filter"))
		}
		if q.Get("sort") != "-timestamp" {
			t.Errorf("expected descending sort, got %q", q.Get("sort"))
		}
		json.NewEncoder(w).Encode(map[string]any{"items": []AttendanceRecord{}, "totalItems": 0})
	}))
	defer server.Close()

	repo := NewAttendanceRepository(newTestClient(t, server), "attendance")
	_, err := repo.ListByTimestampRange(context.Background(), "2024-02-14T18:30:00Z", "2024-02-15T18:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAttendanceRepo_Create_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := NewAttendanceRepository(newTestClient(t, server), "attendance")
	if err := repo.Create(context.Background(), &AttendanceRecord{ID: "att-1"}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestQuoteFilterValue(t *testing.T) {
	if got := quoteFilterValue("o'brien"); got != `'o\'brien'` {
		t.Errorf("unexpected quoting: %s", got)
	}
}
