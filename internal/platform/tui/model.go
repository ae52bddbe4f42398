package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// DefaultSky is the background color of the play field.
const DefaultSky = lipgloss.Color("17")

// CuePlayer plays sound cues for game events.
type CuePlayer interface {
	Play(ev core.Event)
	SetMuted(muted bool)
}

// Options configures the terminal host.
type Options struct {
	Logger        *log.Logger
	Cues          CuePlayer      // Optional; nil plays nothing
	Muted         bool           // Start with cues muted
	Sky           lipgloss.Color // Empty for the terminal's own background
	ScreenshotDir string         // Defaults to ~/.flappy/screenshots
}

// Result summarizes a finished session.
type Result struct {
	Best int
	Runs int
	Quit bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *Renderer
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	logger     *log.Logger
	cues       CuePlayer
	muted      bool
	shotDir    string
	best       int
	runs       int
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		renderer:   NewRenderer(opts.Sky),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		logger:     logger,
		cues:       opts.Cues,
		muted:      opts.Muted,
		shotDir:    opts.ScreenshotDir,
	}
	m.screen = core.NewScreen(m.playfield())
	if m.cues != nil {
		m.cues.SetMuted(m.muted)
	}
	return m
}

// Init initializes the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Debug("game ready", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.handleResize(m.config.ScreenW, m.config.ScreenH)

	case key.Matches(msg, m.keys.Mute):
		m.muted = !m.muted
		if m.cues != nil {
			m.cues.SetMuted(m.muted)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize adapts the screen and game to a new terminal size.
func (m Model) handleResize(width, height int) (tea.Model, tea.Cmd) {
	m.config.ScreenW = width
	m.config.ScreenH = height
	m.screen.Resize(m.playfield())

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.gameConfig())
	} else if !m.gameState.Started {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	wasOver := m.gameState.GameOver
	m.gameState = result.State

	if result.Events.Has(core.EventStart) {
		m.runs++
		m.logger.Debug("run started", "game", m.game.ID(), "run", m.runs)
	}
	if m.gameState.Score > m.best {
		m.best = m.gameState.Score
	}
	if m.gameState.GameOver && !wasOver {
		m.logger.Info("run over", "game", m.game.ID(), "score", m.gameState.Score, "best", m.best)
	}
	if m.cues != nil && result.Events != 0 {
		m.cues.Play(result.Events)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// playfield returns the screen size left after the help footer.
func (m Model) playfield() (int, int) {
	footer := lipgloss.Height(m.help.View(m.keys))
	return m.config.ScreenW, core.Max(m.config.ScreenH-footer, 1)
}

// gameConfig returns the runtime config as seen by the game.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenW, cfg.ScreenH = m.playfield()
	return cfg
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	path, err := writeScreenshot(m.shotDir, m.game.ID(), m.screen, time.Now())
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// writeScreenshot writes the plain text of a screen and returns the file path.
func writeScreenshot(dir, gameID string, s *core.Screen, now time.Time) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.txt", gameID, now.Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(s.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a game and blocks until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (Result, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Taps on the start button
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return Result{Quit: true}, nil
	}
	return Result{Best: m.best, Runs: m.runs, Quit: m.quitting}, nil
}
