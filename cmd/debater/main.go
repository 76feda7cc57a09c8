package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"debater/cmd/debater/tui"
	"debater/cmd/debater/ui"
	"debater/internal/config"
	"debater/internal/logging"
	"debater/internal/stub"
	"debater/internal/transport"
)

const version = "1.0.0"

var (
	// Global flags
	backendURL string
	offline    bool
	themeName  string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd launches the interactive client.
var rootCmd = &cobra.Command{
	Use:   "debater",
	Short: "Debater - multi-perspective idea analyst",
	Long: `Debater is an interactive client for the multi-perspective analysis
backend. Describe an idea and it is examined by an advocate, a flaw
finder and a researcher, then summarized conversationally with a final
conclusion. Casual messages get a chat reply instead.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			// Fall back to defaults plus env; only a corrupt file is fatal.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		if backendURL != "" {
			cfg.BackendURL = backendURL
		}
		if offline {
			cfg.Offline = true
		}
		if themeName != "" {
			cfg.Theme = themeName
		}
		if verbose {
			cfg.Debug = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("debater v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL (default http://localhost:8001)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "use the built-in canned backend instead of HTTP")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme: light or dark")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(versionCmd)
}

// newBackend picks the transport implementation from the effective config.
func newBackend(log *zap.Logger) transport.Backend {
	if cfg.Offline {
		return &stub.Backend{}
	}
	return transport.NewClient(cfg.BackendURL, log)
}

func runInteractive() error {
	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	logger, err = logging.NewFileLogger(dir, cfg.Debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Info("starting interactive client",
		zap.String("backend", cfg.BackendURL),
		zap.Bool("offline", cfg.Offline))

	model := tui.New(tui.Options{
		Backend:    newBackend(logger),
		BackendURL: cfg.BackendURL,
		Offline:    cfg.Offline,
		Theme:      ui.ThemeByName(cfg.Theme),
		Logger:     logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
