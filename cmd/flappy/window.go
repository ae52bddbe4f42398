package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/window"
)

var (
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play the given tuning variant.

Controls:
  Space/Up/W   - Start / flap / restart
  Click/Touch  - Press the start button, then flap
  P            - Pause
  M            - Mute
  Esc/Q        - Quit

Examples:
  flappy window
  flappy window mobile --width 480 --height 800`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", window.DefaultWidth, "Window width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", window.DefaultHeight, "Window height in pixels")
}

func runWindow(_ *cobra.Command, args []string) {
	if err := windowSession(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// windowSession opens the desktop window and blocks until it closes.
func windowSession(args []string) error {
	variant, err := resolveVariant(args)
	if err != nil {
		return err
	}

	logger := consoleLogger()
	if flagLogFile != "" {
		fileLogger, closeLog, err := sessionLogger()
		if err != nil {
			return err
		}
		defer closeLog()
		logger = fileLogger
	}

	return window.Run(window.Options{
		Variant:    variant,
		ConfigPath: flagConfig,
		Width:      flagWidth,
		Height:     flagHeight,
		TPS:        flagFPS,
		Seed:       flagSeed,
		Muted:      flagMute,
		Volume:     flagVolume,
		Logger:     logger,
	})
}
