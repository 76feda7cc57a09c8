package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"debater/internal/session"
	"debater/internal/transport"
)

// presenter bridges the session core to the event loop. It implements
// the Reconciler, Notifier and Affordance contracts by forwarding typed
// messages over the events channel; Update applies them on the UI
// goroutine, so the model itself is never touched from the worker.
type presenter struct {
	ch chan<- tea.Msg
}

var (
	_ session.Reconciler = presenter{}
	_ session.Notifier   = presenter{}
	_ session.Affordance = presenter{}
)

func (p presenter) ShowChatTurn(turn session.Turn, first bool) {
	p.ch <- chatTurnMsg{turn: turn, first: first}
}

func (p presenter) ShowReport(report transport.Report) {
	p.ch <- reportMsg(report)
}

func (p presenter) Notify(level session.NoticeLevel, message string) {
	p.ch <- noticeMsg{level: level, text: message}
}

func (p presenter) SetBusy(label string) {
	p.ch <- busyMsg(label)
}

func (p presenter) SetReady() {
	p.ch <- readyMsg{}
}
