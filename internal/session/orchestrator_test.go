package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"debater/internal/transport"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBackend scripts the three operations and counts calls.
type fakeBackend struct {
	intent      transport.Intent
	classifyErr error
	reply       string
	chatErr     error
	report      transport.Report
	analyzeErr  error

	classifyCalls int
	chatCalls     int
	analyzeCalls  int

	// blockUntil, when non-nil, makes Classify wait so a second submission
	// can race the first.
	blockUntil chan struct{}
}

func (f *fakeBackend) Classify(ctx context.Context, idea string) (transport.Intent, error) {
	f.classifyCalls++
	if f.blockUntil != nil {
		<-f.blockUntil
	}
	if f.classifyErr != nil {
		return 0, f.classifyErr
	}
	return f.intent, nil
}

func (f *fakeBackend) Chat(ctx context.Context, idea string) (string, error) {
	f.chatCalls++
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.reply, nil
}

func (f *fakeBackend) Analyze(ctx context.Context, idea string) (transport.Report, error) {
	f.analyzeCalls++
	if f.analyzeErr != nil {
		return transport.Report{}, f.analyzeErr
	}
	return f.report, nil
}

// recorder captures everything the orchestrator tells the presentation
// layer, in order.
type recorder struct {
	turns      []Turn
	firsts     []bool
	reports    []transport.Report
	notices    []string
	busyLabels []string
	readyCalls int
}

func (r *recorder) ShowChatTurn(t Turn, first bool) {
	r.turns = append(r.turns, t)
	r.firsts = append(r.firsts, first)
}
func (r *recorder) ShowReport(rep transport.Report) { r.reports = append(r.reports, rep) }

func (r *recorder) Notify(level NoticeLevel, message string) {
	r.notices = append(r.notices, level.String()+": "+message)
}

func (r *recorder) SetBusy(label string) { r.busyLabels = append(r.busyLabels, label) }
func (r *recorder) SetReady()            { r.readyCalls++ }

func newTestOrchestrator(b transport.Backend) (*Orchestrator, *recorder) {
	rec := &recorder{}
	return New(b, rec, rec, rec, nil), rec
}

func TestSubmit_EmptyInputRejectedBeforeTransport(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		backend := &fakeBackend{}
		orch, rec := newTestOrchestrator(backend)

		err := orch.Submit(context.Background(), input)

		require.ErrorIs(t, err, ErrEmptySubmission)
		assert.Zero(t, backend.classifyCalls, "no transport call for %q", input)
		assert.Equal(t, []string{"warning: Please describe your idea first!"}, rec.notices)
		assert.Empty(t, rec.busyLabels, "affordance must not go busy for invalid input")
		assert.Equal(t, SurfaceIdle, orch.State().Surface())
		assert.False(t, orch.Busy())
	}
}

func TestSubmit_ChatAppendsUserThenAgent(t *testing.T) {
	backend := &fakeBackend{intent: transport.IntentChat, reply: "Hi there!"}
	orch, rec := newTestOrchestrator(backend)

	err := orch.Submit(context.Background(), "Hello")
	require.NoError(t, err)

	turns := orch.State().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, Turn{Speaker: SpeakerUser, Text: "Hello"}, turns[0])
	assert.Equal(t, Turn{Speaker: SpeakerAgent, Text: "Hi there!"}, turns[1])
	assert.Equal(t, SurfaceChat, orch.State().Surface())

	// The reconciler saw both turns, user first, flagged as a fresh thread.
	require.Len(t, rec.turns, 2)
	assert.Equal(t, SpeakerUser, rec.turns[0].Speaker)
	assert.Equal(t, SpeakerAgent, rec.turns[1].Speaker)
	assert.Equal(t, []bool{true, true}, rec.firsts)

	assert.Equal(t, 1, rec.readyCalls)
	assert.False(t, orch.Busy())
}

func TestSubmit_LaterChatTurnsAreNotFlaggedFresh(t *testing.T) {
	backend := &fakeBackend{intent: transport.IntentChat, reply: "Sure."}
	orch, rec := newTestOrchestrator(backend)

	require.NoError(t, orch.Submit(context.Background(), "Hello"))
	require.NoError(t, orch.Submit(context.Background(), "And another thing"))

	require.Len(t, orch.State().Turns(), 4)
	assert.Equal(t, []bool{true, true, false, false}, rec.firsts)
}

func TestSubmit_AnalysisReplacesReportAtomically(t *testing.T) {
	first := transport.Report{
		Advocate:       "strong niche demand",
		Critic:         "acquisition cost risk",
		Research:       "regional comparables",
		Conversational: "worth a pilot",
		Conclusion:     "proceed with a pilot",
	}
	backend := &fakeBackend{intent: transport.IntentAnalysis, report: first}
	orch, rec := newTestOrchestrator(backend)

	err := orch.Submit(context.Background(), "A marketplace for renting tools")
	require.NoError(t, err)

	got, ok := orch.State().Report()
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, SurfaceReport, orch.State().Surface())
	assert.Empty(t, orch.State().Turns(), "analysis leaves the chat thread untouched")

	require.Len(t, rec.reports, 1)
	assert.Contains(t, rec.notices, "success: Analysis complete!")
	// Busy label progresses once the analysis classification lands.
	assert.Equal(t, []string{"Thinking...", "Analyzing..."}, rec.busyLabels)

	// A second analysis replaces the record wholesale.
	second := first
	second.Conclusion = "shelve it"
	backend.report = second
	require.NoError(t, orch.Submit(context.Background(), "A drone lawn mowing service"))
	got, ok = orch.State().Report()
	require.True(t, ok)
	assert.Equal(t, "shelve it", got.Conclusion)
}

func TestSubmit_ClassifyFailureMakesNoDownstreamCall(t *testing.T) {
	cause := &transport.Error{Op: "classify", Message: "backend unreachable"}
	backend := &fakeBackend{classifyErr: cause}
	orch, rec := newTestOrchestrator(backend)

	err := orch.Submit(context.Background(), "A marketplace for renting tools")

	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, backend.chatCalls)
	assert.Zero(t, backend.analyzeCalls)
	assert.Equal(t, SurfaceIdle, orch.State().Surface(), "surface unchanged on failure")
	assert.Empty(t, orch.State().Turns())
	assert.Contains(t, rec.notices, "error: Something went wrong. Please try again.")
	assert.Equal(t, 1, rec.readyCalls, "affordance restored on failure")
	assert.False(t, orch.Busy())
}

func TestSubmit_AnalyzeFailureLeavesPriorReport(t *testing.T) {
	kept := transport.Report{Advocate: "a", Critic: "b", Research: "c", Conversational: "d", Conclusion: "e"}
	backend := &fakeBackend{intent: transport.IntentAnalysis, report: kept}
	orch, rec := newTestOrchestrator(backend)
	require.NoError(t, orch.Submit(context.Background(), "A marketplace for renting tools"))

	backend.analyzeErr = &transport.Error{Op: "analyze", Message: "backend returned 500"}
	err := orch.Submit(context.Background(), "A second idea to analyze here")
	require.Error(t, err)

	got, ok := orch.State().Report()
	require.True(t, ok)
	assert.Equal(t, kept, got, "failed analysis must not clobber the prior report")
	assert.Equal(t, SurfaceReport, orch.State().Surface())
	require.Len(t, rec.reports, 1, "no partial report reached the reconciler")
	assert.False(t, orch.Busy())
}

func TestSubmit_ChatFailureKeepsUserTurnOnly(t *testing.T) {
	backend := &fakeBackend{
		intent:  transport.IntentChat,
		chatErr: &transport.Error{Op: "chat", Message: "backend unreachable"},
	}
	orch, rec := newTestOrchestrator(backend)

	err := orch.Submit(context.Background(), "Hello there friend")
	require.Error(t, err)

	// The user's turn was legitimately shown before the reply was
	// requested; the failure aborts at that point without an agent turn.
	turns := orch.State().Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, SpeakerUser, turns[0].Speaker)
	assert.Contains(t, rec.notices, "error: Something went wrong. Please try again.")
	assert.False(t, orch.Busy())
}

func TestSubmit_SecondSubmissionRejectedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	backend := &fakeBackend{intent: transport.IntentChat, reply: "hi", blockUntil: release}
	orch, rec := newTestOrchestrator(backend)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- orch.Submit(context.Background(), "Hello")
	}()

	// Wait until the first interaction holds the guard.
	for !orch.Busy() {
		time.Sleep(time.Millisecond)
	}

	err := orch.Submit(context.Background(), "Hello again")
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-firstDone)

	// Exactly one completed interaction: one classify, one chat, two turns.
	assert.Equal(t, 1, backend.classifyCalls)
	assert.Equal(t, 1, backend.chatCalls)
	assert.Len(t, orch.State().Turns(), 2)
	// The rejection was silent.
	for _, n := range rec.notices {
		assert.NotContains(t, n, "warning")
		assert.NotContains(t, n, "error")
	}
}

func TestSubmit_GuardReleasedAfterPanicInBackend(t *testing.T) {
	backend := &panickyBackend{}
	orch, _ := newTestOrchestrator(backend)

	require.Panics(t, func() {
		_ = orch.Submit(context.Background(), "Hello there friend")
	})
	assert.False(t, orch.Busy(), "guard must be released even on panic")

	// The session remains usable.
	err := orch.Submit(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

type panickyBackend struct{}

func (p *panickyBackend) Classify(ctx context.Context, idea string) (transport.Intent, error) {
	panic("unexpected failure")
}
func (p *panickyBackend) Chat(ctx context.Context, idea string) (string, error) {
	return "", errors.New("unreachable")
}
func (p *panickyBackend) Analyze(ctx context.Context, idea string) (transport.Report, error) {
	return transport.Report{}, errors.New("unreachable")
}
