package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"debater/internal/session"
	"debater/internal/transport"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			// Alt+Enter inserts a newline; plain Enter submits. While an
			// interaction is in flight the affordance is disabled, so the
			// key is swallowed here and never reaches the session guard.
			if msg.Alt {
				break
			}
			if !m.isLoading {
				return m.handleSubmit()
			}
			return m, nil
		}

		// Regular typing is ignored while busy, matching the disabled
		// submit control.
		if !m.isLoading {
			m.textarea, taCmd = m.textarea.Update(msg)
		}
		return m, taCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.viewport.Width-2),
		); err == nil {
			m.renderer = r
		}
		m.refreshContent()
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if m.isLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case busyMsg:
		m.isLoading = true
		m.statusLabel = string(msg)
		return m, tea.Batch(m.waitForEvent(), m.spinner.Tick)

	case readyMsg:
		m.isLoading = false
		m.statusLabel = ""
		return m, m.waitForEvent()

	case chatTurnMsg:
		m.applyChatTurn(msg)
		return m, m.waitForEvent()

	case reportMsg:
		report := transport.Report(msg)
		m.surface = session.SurfaceReport
		m.report = &report
		m.refreshContent()
		m.viewport.GotoTop()
		return m, m.waitForEvent()

	case noticeMsg:
		id := m.nextToastID
		m.nextToastID++
		m.toasts = append(m.toasts, toast{id: id, level: msg.level, text: msg.text})
		expire := tea.Tick(toastTTL*time.Millisecond, func(time.Time) tea.Msg {
			return toastExpireMsg(id)
		})
		return m, tea.Batch(m.waitForEvent(), expire)

	case toastExpireMsg:
		kept := m.toasts[:0]
		for _, t := range m.toasts {
			if t.id != int(msg) {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		return m, nil

	case submitDoneMsg:
		// Outcome already reached the screen through the event stream.
		return m, nil
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

// handleSubmit hands the current input to the session core on a worker
// goroutine. The busy flag is set eagerly for validated input so a second
// Enter cannot slip in before the affordance event arrives.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := m.textarea.Value()

	submit := func() tea.Msg {
		return submitDoneMsg{err: m.orch.Submit(context.Background(), input)}
	}

	if strings.TrimSpace(input) == "" {
		// The core rejects it with a warning notice; the affordance never
		// goes busy for invalid input.
		return m, submit
	}

	m.isLoading = true
	m.statusLabel = "Thinking..."
	return m, tea.Batch(submit, m.spinner.Tick)
}

// applyChatTurn switches to the chat surface, appends the turn and clears
// the input as soon as the user's own turn is echoed, matching the submit
// flow. The opening turns of a fresh thread are always scrolled into
// view; later turns follow only when the viewport is already pinned to
// the bottom, so a user reading scrollback is not yanked away.
func (m *Model) applyChatTurn(msg chatTurnMsg) {
	m.surface = session.SurfaceChat
	m.turns = append(m.turns, msg.turn)
	if msg.turn.Speaker == session.SpeakerUser {
		m.textarea.Reset()
	}
	follow := msg.first || m.viewport.AtBottom()
	m.refreshContent()
	if follow {
		m.viewport.GotoBottom()
	}
}

// layout sizes the viewport from the window, reserving room for header,
// toast line, input and footer.
func (m *Model) layout() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 11
	if h < 5 {
		h = 5
	}
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(w, h)
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}
	m.textarea.SetWidth(w)
}

// refreshContent re-renders the active surface into the viewport.
func (m *Model) refreshContent() {
	switch m.surface {
	case session.SurfaceChat:
		m.viewport.SetContent(m.renderChat())
	case session.SurfaceReport:
		m.viewport.SetContent(m.renderReport())
	default:
		m.viewport.SetContent(m.renderWelcome())
	}
}
