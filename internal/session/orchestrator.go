package session

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"debater/internal/transport"
)

// User-facing strings. The empty-input and failure wording is part of the
// product, not incidental.
const (
	msgEmptyInput     = "Please describe your idea first!"
	msgInteractionErr = "Something went wrong. Please try again."
	msgAnalysisDone   = "Analysis complete!"

	labelThinking  = "Thinking..."
	labelAnalyzing = "Analyzing..."
)

// Orchestrator runs one interaction end to end: guard, classify, dispatch,
// reconcile, notify. It owns the State and is the only writer to it.
type Orchestrator struct {
	backend    transport.Backend
	state      *State
	reconciler Reconciler
	notifier   Notifier
	affordance Affordance
	guard      Guard
	logger     *zap.Logger
	sessionID  string
}

// New wires an orchestrator. reconciler, notifier and affordance must be
// non-nil; a nil logger is replaced with a no-op logger.
func New(backend transport.Backend, reconciler Reconciler, notifier Notifier, affordance Affordance, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		backend:    backend,
		state:      NewState(),
		reconciler: reconciler,
		notifier:   notifier,
		affordance: affordance,
		logger:     logger,
		sessionID:  uuid.NewString(),
	}
}

// State exposes the session state for rendering and tests. Callers must
// not retain it across interactions on other goroutines; the single-flight
// guard is what keeps access safe.
func (o *Orchestrator) State() *State { return o.state }

// Busy reports whether an interaction is in flight.
func (o *Orchestrator) Busy() bool { return o.guard.Busy() }

// SessionID identifies this process-lifetime session in logs.
func (o *Orchestrator) SessionID() string { return o.sessionID }

// Submit runs one interaction. The sequencing contract:
//
//	validate -> acquire guard -> classify -> (chat | analyze) -> release
//
// Empty input is rejected with a warning notice before the guard is even
// taken, so the affordance only ever goes Busy for a validated
// submission. A second submission while one is in flight returns ErrBusy
// with no side effects. The guard and affordance are restored on every
// exit path, panics included.
func (o *Orchestrator) Submit(ctx context.Context, raw string) error {
	idea := strings.TrimSpace(raw)
	if idea == "" {
		o.notifier.Notify(NoticeWarning, msgEmptyInput)
		return ErrEmptySubmission
	}

	if !o.guard.TryAcquire() {
		o.logger.Debug("submission rejected, interaction in flight",
			zap.String("session", o.sessionID))
		return ErrBusy
	}
	defer func() {
		o.guard.Release()
		o.affordance.SetReady()
	}()

	o.affordance.SetBusy(labelThinking)
	o.logger.Info("interaction started",
		zap.String("session", o.sessionID),
		zap.Int("idea_len", len(idea)))

	intent, err := o.backend.Classify(ctx, idea)
	if err != nil {
		// Never guess a default intent: a failed classification aborts the
		// interaction before any downstream call.
		return o.fail("classify", err)
	}
	o.logger.Info("classified", zap.Stringer("intent", intent))

	switch intent {
	case transport.IntentChat:
		return o.runChat(ctx, idea)
	default:
		return o.runAnalysis(ctx, idea)
	}
}

// runChat records the user's turn first, then requests the reply, so a
// reader of the thread never sees an agent turn without its preceding
// user turn.
func (o *Orchestrator) runChat(ctx context.Context, idea string) error {
	userTurn := Turn{Speaker: SpeakerUser, Text: idea}
	first := o.state.AppendTurn(userTurn)
	o.reconciler.ShowChatTurn(userTurn, first)

	reply, err := o.backend.Chat(ctx, idea)
	if err != nil {
		return o.fail("chat", err)
	}

	agentTurn := Turn{Speaker: SpeakerAgent, Text: reply}
	o.state.AppendTurn(agentTurn)
	o.reconciler.ShowChatTurn(agentTurn, first)
	return nil
}

// runAnalysis replaces the report atomically: nothing on screen changes
// until the complete five-field record has arrived.
func (o *Orchestrator) runAnalysis(ctx context.Context, idea string) error {
	o.affordance.SetBusy(labelAnalyzing)

	report, err := o.backend.Analyze(ctx, idea)
	if err != nil {
		return o.fail("analyze", err)
	}

	o.state.SetReport(report)
	o.reconciler.ShowReport(report)
	o.notifier.Notify(NoticeSuccess, msgAnalysisDone)
	return nil
}

// fail logs the transport failure and surfaces the generic error notice.
// State and surfaces are left exactly as they were at the point of
// failure; the deferred release in Submit restores the affordance.
func (o *Orchestrator) fail(op string, err error) error {
	o.logger.Error("interaction failed",
		zap.String("session", o.sessionID),
		zap.String("op", op),
		zap.Error(err))
	o.notifier.Notify(NoticeError, msgInteractionErr)
	return err
}
