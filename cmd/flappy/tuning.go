package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagYAML bool

var tuningCmd = &cobra.Command{
	Use:   "tuning [variant]",
	Short: "Show the resolved tuning of a variant",
	Long: `Print the tuning a variant would be played with and where it came from.

Tuning is searched in this order:
  1. --config <path>
  2. ~/.flappy/configs/<variant>.yaml
  3. ./configs/<variant>.yaml
  4. the built-in defaults

Use --yaml to print a file that can be copied and edited.

Examples:
  flappy tuning
  flappy tuning rapid --yaml > ~/.flappy/configs/rapid.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTuning,
}

func init() {
	tuningCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print the tuning as YAML")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sourceStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

func runTuning(_ *cobra.Command, args []string) {
	variant, err := resolveVariant(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loaded, err := config.Load(variant, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	consoleLogger().Debug("tuning resolved", "variant", variant, "source", loaded.Source)

	if flagYAML {
		data, err := config.Marshal(loaded.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	fmt.Println(tuningTable(loaded.Config).Render())
	source := string(loaded.Source)
	if loaded.Path != "" {
		source += " (" + loaded.Path + ")"
	}
	fmt.Println(sourceStyle.Render("source: " + source))
}

// tuningTable lays out every tuning value as a two-column table.
func tuningTable(c config.FlappyConfig) *table.Table {
	gap := fmt.Sprintf("%.0f", c.Obstacles.GapSize)
	if c.Obstacles.GapSize <= 0 {
		gap = fmt.Sprintf("%.1f%% of height", c.Obstacles.GapRatio*100)
	}

	rows := [][]string{
		{"Variant", c.Title},
		{"Gravity", fmt.Sprintf("%g", c.Physics.Gravity)},
		{"Lift", fmt.Sprintf("%g", c.Physics.Lift)},
		{"Pipe width", fmt.Sprintf("%g", c.Obstacles.Width)},
		{"Spawn period", fmt.Sprintf("%d ticks", c.Obstacles.SpawnPeriod)},
		{"Gap", gap},
		{"Min top", fmt.Sprintf("%g", c.Obstacles.MinTopOffset)},
		{"Avatar", fmt.Sprintf("%gx%g at %.0f%%", c.Avatar.Width, c.Avatar.Height, c.Avatar.XRatio*100)},
		{"Speed", fmt.Sprintf("%g +%g every %d", c.Speed.Base, c.Speed.Increment, c.Speed.Every)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Setting", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
