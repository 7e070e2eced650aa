package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sandbox/internal/platform/tui"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var (
	flagVariant     string
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded sessions",
	Long: `Display recent sessions and totals from the stats database.
World contents are never stored, only per-session counters.

Examples:
  sandbox stats
  sandbox stats --variant sandbox_walk --limit 20
  sandbox stats -i
  sandbox stats --variant sandbox --clear`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagVariant, "variant", "", "Only show one world variant")
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent sessions to show")
	statsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse sessions in a table")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all sessions of --variant")
}

func runStats(_ *cobra.Command, _ []string) error {
	if flagVariant != "" && !registry.Exists(flagVariant) {
		return fmt.Errorf("unknown world %q, run 'sandbox list' to see available worlds", flagVariant)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if flagVariant == "" {
			return fmt.Errorf("--clear needs --variant")
		}
		if err := store.ClearSessions(flagVariant); err != nil {
			return err
		}
		fmt.Printf("Cleared sessions for %s\n", flagVariant)
		return nil
	}

	if flagInteractive {
		cfg := runtimeConfig()
		return tui.RunStats(store, cfg.ScreenW, cfg.ScreenH)
	}

	sessions, err := store.RecentSessions(flagVariant, flagLimit)
	if err != nil {
		return err
	}
	totals, err := store.Totals(flagVariant)
	if err != nil {
		return err
	}

	title := "all worlds"
	if flagVariant != "" {
		title = flagVariant
	}
	fmt.Printf("Sessions - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'sandbox play sandbox' to start one.")
		return nil
	}

	fmt.Printf("  %-14s  %-10s  %-20s  %8s  %6s  %6s  %5s  %s\n", "World", "Player", "Seed", "Ticks", "Broken", "Placed", "Edits", "Date")
	fmt.Printf("  %-14s  %-10s  %-20s  %8s  %6s  %6s  %5s  %s\n", "-----", "------", "----", "-----", "------", "------", "-----", "----")
	for _, s := range sessions {
		fmt.Printf("  %-14s  %-10s  %-20d  %8d  %6d  %6d  %5d  %s\n",
			s.Variant, s.Player, s.Seed, s.Ticks, s.Broken, s.Placed, s.Changed(), s.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Total: %d sessions, %d ticks, %d broken, %d placed\n",
		totals.Sessions, totals.Ticks, totals.Broken, totals.Placed)
	return nil
}
