// Package tui is the interactive terminal interface for the debater
// client. It is a thin projection of the session core: the orchestrator
// runs interactions on a worker goroutine and reports back through typed
// messages; Update applies them to the screen.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"debater/cmd/debater/ui"
	"debater/internal/session"
	"debater/internal/transport"
)

const (
	// toastTTL is how long a notice stays on screen.
	toastTTL = 3000 // milliseconds

	inputPlaceholder = "Describe your idea... (Enter to send, Alt+Enter for newline, Ctrl+C to quit)"
)

// toast is one auto-dismissing notice.
type toast struct {
	id    int
	level session.NoticeLevel
	text  string
}

// Model is the Bubble Tea model for the interactive client.
type Model struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	// Session core
	orch   *session.Orchestrator
	events chan tea.Msg
	logger *zap.Logger

	// Surface projection (mirrors the session state, applied in event
	// order so the two panels are never shown inconsistently)
	surface session.Surface
	turns   []session.Turn
	report  *transport.Report

	// Transient UI state
	toasts      []toast
	nextToastID int
	isLoading   bool
	statusLabel string

	// Environment
	offline    bool
	backendURL string

	width  int
	height int
	ready  bool
}

// Messages for tea updates.
type (
	// chatTurnMsg appends one turn to the chat surface. first marks the
	// opening turns of a fresh thread, which are scrolled into view
	// unconditionally.
	chatTurnMsg struct {
		turn  session.Turn
		first bool
	}

	// reportMsg replaces the report surface with a complete record.
	reportMsg transport.Report

	// noticeMsg shows one auto-dismissing toast.
	noticeMsg struct {
		level session.NoticeLevel
		text  string
	}

	// busyMsg / readyMsg mirror the submit affordance.
	busyMsg  string
	readyMsg struct{}

	// toastExpireMsg removes a toast after its TTL.
	toastExpireMsg int

	// submitDoneMsg carries the final result of an interaction. Failures
	// were already surfaced as notices; it exists so the worker command
	// has a terminal message.
	submitDoneMsg struct{ err error }
)

// Options configures the TUI.
type Options struct {
	Backend    transport.Backend
	BackendURL string
	Offline    bool
	Theme      ui.Theme
	Logger     *zap.Logger
}

// New builds the model and wires the session orchestrator to it.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.Prompt = "┃ "
	ta.SetHeight(3)
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	// Plain Enter is claimed by Update for submitting, so the newline
	// binding moves to Alt+Enter; the default enter/ctrl+m binding would
	// never see the alt-modified key.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	styles := ui.NewStyles(opts.Theme)
	sp.Style = styles.Spinner

	events := make(chan tea.Msg, 32)
	p := presenter{ch: events}

	return Model{
		textarea:   ta,
		spinner:    sp,
		styles:     styles,
		orch:       session.New(opts.Backend, p, p, p, opts.Logger),
		events:     events,
		logger:     opts.Logger,
		surface:    session.SurfaceIdle,
		offline:    opts.Offline,
		backendURL: opts.BackendURL,
	}
}

// Init starts the cursor blink, the spinner and the event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.waitForEvent())
}

// waitForEvent delivers the next orchestrator event to Update. Exactly
// one of these is pending at any time; every handled event re-arms it.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}
