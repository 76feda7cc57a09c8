package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"debater/internal/session"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderToasts(),
		m.styles.Content.Render(m.viewport.View()),
		m.styles.Input.Render(m.textarea.View()),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" Debater ")

	mode := "backend " + m.backendURL
	if m.offline {
		mode = "offline"
	}
	badge := m.styles.Badge.Render(mode)

	var status string
	if m.isLoading {
		label := m.statusLabel
		if label == "" {
			label = "Thinking..."
		}
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Subtitle.Render(label))
	} else {
		status = m.styles.Success.Render("Ready")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

// renderToasts keeps a single status line so the layout never jumps;
// active notices are joined onto it and removed when they expire.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return " "
	}
	parts := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		var style lipgloss.Style
		var mark string
		switch t.level {
		case session.NoticeSuccess:
			style, mark = m.styles.Success, "✔"
		case session.NoticeWarning:
			style, mark = m.styles.Warning, "▲"
		case session.NoticeError:
			style, mark = m.styles.Error, "✘"
		default:
			style, mark = m.styles.Info, "●"
		}
		parts = append(parts, style.Render(mark+" "+t.text))
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Center, joinWithGap(parts)...)
}

func joinWithGap(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "   ")
		}
		out = append(out, p)
	}
	return out
}

func (m Model) renderFooter() string {
	hints := "Enter: send | Alt+Enter: newline | Ctrl+C: quit"
	timestamp := time.Now().Format("15:04")
	return m.styles.Footer.Render(fmt.Sprintf("%s | %s", hints, timestamp))
}

func (m Model) renderWelcome() string {
	title := m.styles.Title.Render("Multi-Perspective Idea Analyst")
	body := m.styles.Muted.Render(
		"Describe an idea and it will be examined from every angle:\n" +
			"an advocate, a flaw finder, a researcher and a conversational\n" +
			"summary, closed out by a final conclusion.\n\n" +
			"Short or casual messages get a chat reply instead.")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

func (m Model) renderChat() string {
	var sb []string
	for _, turn := range m.turns {
		switch turn.Speaker {
		case session.SpeakerUser:
			sb = append(sb,
				m.styles.UserLabel.Render("You"),
				m.styles.UserBubble.Render(turn.Text),
			)
		default:
			sb = append(sb,
				m.styles.AgentLabel.Render("Debater"),
				m.safeRenderMarkdown(turn.Text),
			)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sb...)
}

// Card headings for the five report perspectives.
var reportSections = []struct {
	title string
	field func(m Model) string
}{
	{"Positive Analysis", func(m Model) string { return m.report.Advocate }},
	{"Flaw Finder", func(m Model) string { return m.report.Critic }},
	{"Research", func(m Model) string { return m.report.Research }},
	{"Conversational Summary", func(m Model) string { return m.report.Conversational }},
	{"Final Conclusion", func(m Model) string { return m.report.Conclusion }},
}

func (m Model) renderReport() string {
	if m.report == nil {
		return ""
	}
	cardWidth := m.viewport.Width - 2
	cards := make([]string, 0, len(reportSections))
	for _, section := range reportSections {
		content := lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.CardTitle.Render(section.title),
			m.safeRenderMarkdown(section.field(m)),
		)
		cards = append(cards, m.styles.Card.Width(cardWidth).Render(content))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// safeRenderMarkdown renders markdown with panic recovery: if the
// renderer blows up on odd input, the raw text is shown instead.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}
