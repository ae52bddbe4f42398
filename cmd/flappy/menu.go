package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a tuning variant interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a variant, Enter to play it.
After quitting a game you return to the menu; best scores of
this session are shown next to each variant.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play variant
  Q/Esc        - Quit

Examples:
  flappy menu
  flappy menu --fps 30 --mute`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := sessionLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cues := newCuePlayer(logger)
	defer cues.Cleanup()

	cfg := terminalConfig()
	best := make(map[string]int)

	for {
		menuResult, err := tui.RunMenu(cfg, tui.MenuOptions{
			ConfigPath: flagConfig,
			Best:       best,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit || menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh obstacles for every session unless a seed is pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		result, err := tui.Run(game, cfg, tui.Options{
			Logger: logger,
			Cues:   cues,
			Muted:  flagMute,
			Sky:    tui.DefaultSky,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}

		if result.Best > best[menuResult.GameID] {
			best[menuResult.GameID] = result.Best
		}
	}
}
