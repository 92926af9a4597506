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

	"github.com/sleewja/xangaroo/internal/core"
	"github.com/sleewja/xangaroo/internal/runner"
)

// footerHeight is the number of terminal lines below the playfield.
const footerHeight = 1

// Model is the Bubble Tea model for a run.
type Model struct {
	game       *runner.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	bars       energyBars
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *runner.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 1)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		bars:       newEnergyBars(20),
		inputFrame: core.NewInputFrame(),
		logger:     logger,
	}
}

// Init starts the run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The world has a fixed size,
// so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	for _, ev := range result.Events {
		m.logger.Debug("event", "type", ev.Type, "name", ev.Name, "value", ev.Value)
	}
	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("run ended", "won", result.State.Won, "distance", result.State.Score(), "by", m.game.EndedBy())
	}
	m.gameState = result.State

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".xangaroo", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("xangaroo_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return lipgloss.JoinVertical(lipgloss.Left, RenderScreen(m.screen), m.footer())
}

// footer shows the energy reserve and the key help on one line.
func (m Model) footer() string {
	if m.help.ShowAll {
		return m.help.View(m.keys)
	}
	bars := m.bars.View(m.gameState, m.game.Config().Energy.PickupCap)
	return bars + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

// Run starts the Bubble Tea program for the given game.
func Run(game *runner.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
