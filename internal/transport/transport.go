// Package transport wraps the three Debater backend operations behind a
// single Backend interface so the UI layers never talk HTTP directly.
// Failures from any operation are normalized into *Error; no retries are
// performed here, callers decide how to report.
package transport

import (
	"context"
	"fmt"
)

// Intent is the backend's decision on how a submission should be handled.
type Intent int

const (
	// IntentChat means the input is conversational (greeting, vague opener)
	// and should get a single chat reply.
	IntentChat Intent = iota
	// IntentAnalysis means the input is a concrete idea ready for the full
	// multi-perspective analysis.
	IntentAnalysis
)

func (i Intent) String() string {
	switch i {
	case IntentChat:
		return "chat"
	case IntentAnalysis:
		return "analysis"
	}
	return "unknown"
}

// Report is the five-field output of an analysis run. Field names mirror
// the backend wire format.
type Report struct {
	Advocate       string `json:"goodAgent"`
	Critic         string `json:"devilAgent"`
	Research       string `json:"researchAgent"`
	Conversational string `json:"conversationalAgent"`
	Conclusion     string `json:"finalConclusion"`
}

// Backend is the request/response contract with the classification and
// analysis service. Implementations: Client (HTTP) and stub.Backend
// (in-memory, for offline mode and tests).
type Backend interface {
	// Classify decides whether idea is conversational or analytical.
	Classify(ctx context.Context, idea string) (Intent, error)
	// Chat returns a single conversational reply. Each call is stateless
	// from the client's perspective; any conversational context lives
	// server-side.
	Chat(ctx context.Context, idea string) (string, error)
	// Analyze returns a full five-field report.
	Analyze(ctx context.Context, idea string) (Report, error)
}

// Error is the single failure shape surfaced by any Backend operation:
// network failures, non-success statuses and malformed responses all
// collapse into it.
type Error struct {
	Op      string // "classify", "chat" or "analyze"
	Message string // human-readable, shown to the user as-is
	Err     error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }
