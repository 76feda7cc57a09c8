// Package session is the client-side interaction core: it validates
// submissions, enforces the single-flight guard, routes a submission to
// the right backend operation and keeps the two presentation surfaces
// (chat thread, analysis report) consistent. It has no UI dependencies;
// presentation layers plug in through the Reconciler, Notifier and
// Affordance interfaces.
package session

import (
	"errors"

	"debater/internal/transport"
)

// ErrEmptySubmission rejects whitespace-only input before any backend call.
var ErrEmptySubmission = errors.New("empty submission")

// ErrBusy rejects a submission while another interaction is in flight.
// It is silent at the UI level: the disabled affordance already told the
// user, so no notice accompanies it.
var ErrBusy = errors.New("interaction already in flight")

// Speaker identifies who produced a chat turn.
type Speaker int

const (
	SpeakerUser Speaker = iota
	SpeakerAgent
)

func (s Speaker) String() string {
	if s == SpeakerUser {
		return "user"
	}
	return "agent"
}

// Turn is one entry in the conversational thread. Turns are append-only
// for the life of the process and never sent back to the backend.
type Turn struct {
	Speaker Speaker
	Text    string
}

// Surface identifies which presentation panel is active. The chat and
// report panels are mutually exclusive; switching surfaces happens before
// any content is written so stale content from the other panel is never
// shown underneath fresh content.
type Surface int

const (
	SurfaceIdle Surface = iota
	SurfaceChat
	SurfaceReport
)

func (s Surface) String() string {
	switch s {
	case SurfaceChat:
		return "chat"
	case SurfaceReport:
		return "report"
	}
	return "idle"
}

// NoticeLevel grades a notification.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	}
	return "info"
}

// Notifier emits short-lived status notices. Calls are independent and
// fire-and-forget; the emitter cannot fail and affects no other state.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// Reconciler receives surface updates in the order they must be applied.
// ShowChatTurn is append-only; first is true for the opening turns of a
// fresh thread so the presenter can scroll the panel into view once
// without disorienting the user on later turns. ShowReport always carries
// a complete five-field report.
type Reconciler interface {
	ShowChatTurn(turn Turn, first bool)
	ShowReport(report transport.Report)
}

// Affordance mirrors the submit control. SetBusy may be called again
// mid-interaction to change the label; SetReady is guaranteed on every
// exit path.
type Affordance interface {
	SetBusy(label string)
	SetReady()
}

// State is the session-owned data behind both surfaces. It is mutated
// only by the orchestrator's single in-flight interaction, so it needs no
// locking of its own.
type State struct {
	surface Surface
	turns   []Turn
	report  *transport.Report
}

// NewState starts at SurfaceIdle with no content.
func NewState() *State {
	return &State{}
}

// AppendTurn forces the chat surface active, then appends. It reports
// whether this interaction opened a fresh thread (first or second turn),
// which is the only moment scroll-to-reveal is warranted.
func (s *State) AppendTurn(t Turn) (first bool) {
	s.surface = SurfaceChat
	s.turns = append(s.turns, t)
	return len(s.turns) <= 2
}

// SetReport forces the report surface active and replaces the previous
// report in full. Partial reports never exist: the record arrives whole
// from the transport layer or not at all.
func (s *State) SetReport(r transport.Report) {
	s.surface = SurfaceReport
	s.report = &r
}

// Surface returns the active surface.
func (s *State) Surface() Surface { return s.surface }

// Turns returns a copy of the chat thread.
func (s *State) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Report returns the current report, if an analysis has completed.
func (s *State) Report() (transport.Report, bool) {
	if s.report == nil {
		return transport.Report{}, false
	}
	return *s.report, true
}
