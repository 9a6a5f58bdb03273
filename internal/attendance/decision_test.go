package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/docstore"
	"github.com/kozaktomas/face-attendance/internal/docstore/mock"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

func TestDecide_Matched(t *testing.T) {
	users := mock.NewMockUserRepository()
	users.AddUser(docstore.User{ID: "u1", UserID: "u1", Name: "Alice", ClassLabel: "alice"})

	preds := []vision.Prediction{{TagName: "alice", Probability: 0.92}}
	decision, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.Outcome != OutcomeMatched {
		t.Fatalf("expected matched, got %s", decision.Outcome)
	}
	if decision.User == nil || decision.User.UserID != "u1" {
		t.Errorf("unexpected user: %+v", decision.User)
	}
	if decision.Confidence != 0.92 {
		t.Errorf("expected confidence 0.92, got %v", decision.Confidence)
	}
}

func TestDecide_LowConfidence(t *testing.T) {
	users := mock.NewMockUserRepository()
	users.AddUser(docstore.User{ID: "u1", ClassLabel: "bob"})

	preds := []vision.Prediction{{TagName: "bob", Probability: 0.40}}
	decision, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.Outcome != OutcomeLowConfidence {
		t.Fatalf("expected low-confidence, got %s", decision.Outcome)
	}
	// Low-confidence carries the raw probability, not a rounded value.
	if decision.Confidence != 0.40 {
		t.Errorf("expected confidence 0.40, got %v", decision.Confidence)
	}
	if decision.User != nil {
		t.Error("no user should be resolved below threshold")
	}
}

func TestDecide_NoPredictions(t *testing.T) {
	decision, err := Decide(context.Background(), nil, 0.85, mock.NewMockUserRepository())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeNoPredictions {
		t.Errorf("expected no-predictions, got %s", decision.Outcome)
	}
}

func TestDecide_UnknownTag(t *testing.T) {
	users := mock.NewMockUserRepository()

	preds := []vision.Prediction{{TagName: "ghost", Probability: 0.99}}
	decision, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeUnknownTag {
		t.Errorf("expected unknown-tag, got %s", decision.Outcome)
	}
}

func TestDecide_LookupErrorPropagates(t *testing.T) {
	users := mock.NewMockUserRepository()
	users.GetError = errors.New("store unavailable")

	preds := []vision.Prediction{{TagName: "alice", Probability: 0.95}}
	_, err := Decide(context.Background(), preds, 0.85, users)
	if err == nil {
		t.Fatal("a transient lookup failure must propagate as an error, not unknown-tag")
	}
}

func TestDecide_PicksMaxProbability(t *testing.T) {
	users := mock.NewMockUserRepository()
	users.AddUser(docstore.User{ID: "u2", UserID: "u2", Name: "Bob", ClassLabel: "bob"})

	preds := []vision.Prediction{
		{TagName: "alice", Probability: 0.60},
		{TagName: "bob", Probability: 0.91},
		{TagName: "carol", Probability: 0.88},
	}
	decision, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Outcome != OutcomeMatched || decision.User.UserID != "u2" {
		t.Errorf("expected bob to win, got %+v", decision)
	}
}

func TestDecide_TieBreaksToFirst(t *testing.T) {
	users := mock.NewMockUserRepository()
	users.AddUser(docstore.User{ID: "u1", UserID: "u1", ClassLabel: "alice"})
	users.AddUser(docstore.User{ID: "u2", UserID: "u2", ClassLabel: "bob"})

	preds := []vision.Prediction{
		{TagName: "alice", Probability: 0.90},
		{TagName: "bob", Probability: 0.90},
	}
	decision, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.User.UserID != "u1" {
		t.Errorf("ties must break to the first occurrence, got %+v", decision.User)
	}
}

func TestDecide_ConfidenceRounding(t *testing.T) {
	users := mock.NewMockUserRepository()
	users.AddUser(docstore.User{ID: "u1", UserID: "u1", ClassLabel: "alice"})

	preds := []vision.Prediction{{TagName: "alice", Probability: 0.98765432}}
	decision, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Confidence != 0.9877 {
		t.Errorf("expected confidence rounded to 0.9877, got %v", decision.Confidence)
	}
}

func TestDecide_Deterministic(t *testing.T) {
	users := mock.NewMockUserRepository()
	users.AddUser(docstore.User{ID: "u1", UserID: "u1", ClassLabel: "alice"})
	preds := []vision.Prediction{{TagName: "alice", Probability: 0.93}}

	first, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Decide(context.Background(), preds, 0.85, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Outcome != second.Outcome || first.Confidence != second.Confidence {
		t.Errorf("identical inputs produced different decisions: %+v vs %+v", first, second)
	}
}
