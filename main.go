package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ingredi/config"
	"ingredi/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

var (
	// Global flags
	verbose    bool
	apiURL     string
	backend    string
	configPath string

	// Logger for headless subcommands
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ingredi",
	Short: "Explain what's in an ingredient list, and whether to care",
	Long: `ingredi turns an ingredient list (typed, scanned from a label photo, or
dictated) into a short, structured explanation from a reasoning service.

Run without arguments to start the interactive interface.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal and logs to a file instead
		if cmd == cmd.Root() {
			return nil
		}
		var err error
		logger, err = config.NewCLILogger(verbose)
		return err
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

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Reasoning service base URL (or set INGREDI_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Backend: service, ollama, openai or anthropic (or set INGREDI_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/ingredi/config.toml)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(ocrCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize debug logging after config is loaded
	log := config.InitDebugLog(cfg.DataDir())
	defer func() { _ = log.Sync() }()

	app := buildApp(cfg, log)

	keys, err := config.LoadKeyBindings(config.GetKeyBindingsFilePath())
	if err != nil {
		log.Warn("keybindings unreadable, using defaults", zap.Error(err))
		keys = config.DefaultKeyBindings()
	}

	pickerDir, _ := os.Getwd()

	p := tea.NewProgram(
		ui.NewAppView(app.model, ui.Options{
			Camera:      app.camera,
			Voice:       app.voice,
			KeyBindings: keys,
			Logger:      log,
			PickerDir:   pickerDir,
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ingredi: %w", err)
	}
	return nil
}
