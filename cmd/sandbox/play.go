package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/games/sandbox"
	"github.com/vovakirdan/tui-sandbox/internal/platform/tui"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <world>",
	Short: "Play a world",
	Long: `Generate a world and start playing.

Controls:
  A/D, Left/Right  - Walk
  W/Up/Space       - Jump
  X, left click    - Break the targeted block
  C, right click   - Place the selected block
  I/J/K/L          - Move the keyboard aim
  1-9, [ ], wheel  - Pick a hotbar slot
  R                - Respawn
  P/Esc            - Pause
  ?                - More keys
  Q/Ctrl+C         - Quit

Examples:
  sandbox play sandbox
  sandbox play sandbox_walk --seed 7
  sandbox play sandbox --config ./my-world.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom sandbox config YAML")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown world %q, run 'sandbox list' to see available worlds", gameID)
	}

	// Fail fast on a broken config; the game itself would fall back to defaults.
	if _, err := config.LoadSandbox(flagConfig); err != nil {
		return err
	}
	sandbox.SetConfigPath(flagConfig)

	logger, closeLog, err := newLogger(io.Discard, "sandbox")
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Open stats storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Player: localUser(),
	})
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func localUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
