package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"debater/cmd/debater/ui"
	"debater/internal/logging"
	"debater/internal/session"
	"debater/internal/transport"
)

// askCmd runs a single interaction without the TUI and prints the
// outcome, for scripting and quick checks.
var askCmd = &cobra.Command{
	Use:   "ask [idea]",
	Short: "Run one interaction and print the result",
	Long: `Sends one submission through the full pipeline (classify, then chat
or analyze) and prints either the chat reply or the five-part report.

Example:
  debater ask "A marketplace for renting tools"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = logging.NewConsoleLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	printer := &consolePrinter{styles: ui.NewStyles(ui.ThemeByName(cfg.Theme))}
	orch := session.New(newBackend(logger), printer, printer, printer, logger)

	idea := strings.Join(args, " ")
	if err := orch.Submit(context.Background(), idea); err != nil {
		return err
	}
	return nil
}

// consolePrinter renders the interaction directly to stdout. It fills
// the same contracts the TUI does, just without an event loop.
type consolePrinter struct {
	styles ui.Styles
}

var (
	_ session.Reconciler = (*consolePrinter)(nil)
	_ session.Notifier   = (*consolePrinter)(nil)
	_ session.Affordance = (*consolePrinter)(nil)
)

// ShowChatTurn prints the turn. The fresh-thread flag gates scrolling in
// the TUI; a sequential console has nothing to scroll.
func (c *consolePrinter) ShowChatTurn(turn session.Turn, _ bool) {
	label := c.styles.UserLabel.Render("You")
	if turn.Speaker == session.SpeakerAgent {
		label = c.styles.AgentLabel.Render("Debater")
	}
	fmt.Printf("%s\n%s\n", label, turn.Text)
}

func (c *consolePrinter) ShowReport(report transport.Report) {
	sections := []struct {
		title string
		body  string
	}{
		{"Positive Analysis", report.Advocate},
		{"Flaw Finder", report.Critic},
		{"Research", report.Research},
		{"Conversational Summary", report.Conversational},
		{"Final Conclusion", report.Conclusion},
	}
	for _, s := range sections {
		fmt.Println(c.styles.CardTitle.Render(s.title))
		fmt.Println(s.body)
		fmt.Println()
	}
}

func (c *consolePrinter) Notify(level session.NoticeLevel, message string) {
	var styled string
	switch level {
	case session.NoticeSuccess:
		styled = c.styles.Success.Render(message)
	case session.NoticeWarning:
		styled = c.styles.Warning.Render(message)
	case session.NoticeError:
		styled = c.styles.Error.Render(message)
	default:
		styled = c.styles.Info.Render(message)
	}
	fmt.Fprintln(os.Stderr, styled)
}

func (c *consolePrinter) SetBusy(label string) {
	fmt.Fprintln(os.Stderr, c.styles.Muted.Render(label))
}

func (c *consolePrinter) SetReady() {}
