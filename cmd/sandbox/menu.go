package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/games/sandbox"
	"github.com/vovakirdan/tui-sandbox/internal/platform/tui"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a world from an interactive menu",
	Long: `Start the sandbox in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a world and Tab to
browse recorded sessions. Pause a game and press B to return here.

Examples:
  sandbox menu
  sandbox menu --fps 30
  sandbox menu --db ./sessions.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom sandbox config YAML")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if _, err := config.LoadSandbox(flagConfig); err != nil {
		return err
	}
	sandbox.SetConfigPath(flagConfig)

	logger, closeLog, err := newLogger(io.Discard, "sandbox")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(runtimeConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Player: localUser(),
	})
}
