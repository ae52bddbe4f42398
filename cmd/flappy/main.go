// flappy is a Flappy Bird-style arcade game for the terminal and the desktop.
//
// Usage:
//
//	flappy list                - List tuning variants
//	flappy play [variant]      - Play in the terminal
//	flappy menu                - Pick variants interactively
//	flappy window [variant]    - Play in a desktop window
//	flappy tuning [variant]    - Show the resolved tuning
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Custom tuning YAML
//	--mute               - Disable sound cues
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagMute     bool
	flagVolume   float64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - guide a bird through pipes in your terminal",
	Long: `Flappy is an arcade game: tap to flap, fall under gravity, and pass
through the gaps between pipes. Each pipe cleared scores a point and the
pipes speed up as the score grows.

Available commands:
  list     - Show all tuning variants
  play     - Play a variant in the terminal
  menu     - Interactive variant picker
  window   - Play a variant in a desktop window
  tuning   - Show the resolved tuning of a variant

Examples:
  flappy play
  flappy play rapid --seed 42
  flappy menu --mute
  flappy window drift
  flappy tuning mobile --yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flappy.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound cues muted")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", audio.DefaultVolume, "Cue volume from 0 to 1")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(tuningCmd)
}
