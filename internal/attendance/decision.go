// Package attendance holds the attendance decision pipeline: turning ranked
// classifier predictions into a deterministic outcome, resolving calendar-day
// query windows, and recording recognition events.
package attendance

import (
	"context"
	"fmt"
	"math"

	"github.com/kozaktomas/face-attendance/internal/docstore"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// Outcome classifies the result of a recognition attempt.
type Outcome string

const (
	OutcomeMatched       Outcome = "matched"
	OutcomeLowConfidence Outcome = "low-confidence"
	OutcomeNoPredictions Outcome = "no-predictions"
	OutcomeUnknownTag    Outcome = "unknown-tag"
)

// Decision is the resolved outcome of a prediction list.
// For OutcomeMatched, Confidence is the top probability rounded to 4
// decimals and User is the resolved identity. For OutcomeLowConfidence,
// Confidence carries the raw top probability.
type Decision struct {
	Outcome    Outcome
	User       *docstore.User
	Confidence float64
}

// topPrediction selects the entry with the maximum probability.
// Ties break to the first occurrence in list order.
func topPrediction(preds []vision.Prediction) vision.Prediction {
	top := preds[0]
	for _, p := range preds[1:] {
		if p.Probability > top.Probability {
			top = p
		}
	}
	return top
}

// roundConfidence rounds a probability to 4 decimal places.
func roundConfidence(p float64) float64 {
	return math.Round(p*10000) / 10000
}

// Decide resolves a prediction list against the threshold and the enrolled
// users. It is a pure function of its inputs plus the user lookup: identical
// predictions, threshold and user state always produce the same decision.
// A lookup failure propagates as an error, never as OutcomeUnknownTag.
func Decide(ctx context.Context, preds []vision.Prediction, threshold float64, users docstore.UserRepository) (Decision, error) {
	if len(preds) == 0 {
		return Decision{Outcome: OutcomeNoPredictions}, nil
	}

	top := topPrediction(preds)
	if top.Probability < threshold {
		return Decision{Outcome: OutcomeLowConfidence, Confidence: top.Probability}, nil
	}

	user, err := users.GetByClassLabel(ctx, top.TagName)
	if err != nil {
		return Decision{}, fmt.Errorf("could not look up user for tag %q: %w", top.TagName, err)
	}
	if user == nil {
		return Decision{Outcome: OutcomeUnknownTag}, nil
	}

	return Decision{
		Outcome:    OutcomeMatched,
		User:       user,
		Confidence: roundConfidence(top.Probability),
	}, nil
}
