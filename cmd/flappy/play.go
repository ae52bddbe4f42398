package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start playing the given tuning variant (default: classic).

Controls:
  Space/Up/W   - Start / flap / restart
  Enter        - Start
  Mouse click  - Press the start button, then flap
  R            - Restart (after game over)
  P/Esc        - Pause
  M            - Mute
  ?            - Toggle help
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Examples:
  flappy play
  flappy play rapid
  flappy play --config ./my-flappy.yaml --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// resolveVariant returns the variant named by args, or the default.
func resolveVariant(args []string) (string, error) {
	variant := config.DefaultVariant
	if len(args) > 0 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return "", fmt.Errorf("unknown variant %q (run 'flappy list' to see variants)", variant)
	}
	return variant, nil
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// newCuePlayer opens the speaker. Without an audio device the game runs silent.
// The speaker is opened even when starting muted so that unmuting works.
func newCuePlayer(logger *log.Logger) *audio.SoundManager {
	sm := audio.NewSoundManager()
	sm.SetVolume(flagVolume)
	sm.SetMuted(flagMute)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable, playing without sound", "error", err)
	}
	logger.Debug("audio", "ready", sm.Ready(), "muted", flagMute, "volume", flagVolume)
	return sm
}

func runPlay(_ *cobra.Command, args []string) {
	if err := playSession(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playSession runs one terminal game and prints the best score afterwards.
func playSession(args []string) error {
	variant, err := resolveVariant(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := sessionLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	loaded, err := config.Load(variant, flagConfig)
	if err != nil {
		return err
	}
	logger.Info("tuning loaded", "variant", variant, "source", loaded.Source, "path", loaded.Path)

	game, err := registry.Create(variant)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	cues := newCuePlayer(logger)
	defer cues.Cleanup()

	result, err := tui.Run(game, terminalConfig(), tui.Options{
		Logger: logger,
		Cues:   cues,
		Muted:  flagMute,
		Sky:    tui.DefaultSky,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if result.Runs > 0 {
		fmt.Printf("Best score: %d (%d runs)\n", result.Best, result.Runs)
	}
	return nil
}
