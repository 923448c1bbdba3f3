package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trackrace/internal/config"
	"github.com/vovakirdan/trackrace/internal/levels"
)

// PlayMode is the playback state of the replay viewer.
type PlayMode int

const (
	Paused PlayMode = iota
	Playing
	Fast
)

func (m PlayMode) String() string {
	switch m {
	case Playing:
		return "playing"
	case Fast:
		return "fast"
	default:
		return "paused"
	}
}

// SolveSaver records the best solve of a level. *storage.Store implements it.
type SolveSaver interface {
	SaveSolve(levelKey string, solve levels.SolveData) (levels.SolveData, error)
}

// ReplayModel is the Bubble Tea model for watching a race or a tile demo.
type ReplayModel struct {
	title    string
	player   Player
	level    *levels.Level
	store    SolveSaver
	logger   *log.Logger
	playback config.PlaybackConfig
	keys     ReplayKeyMap
	help     help.Model
	theme    Theme
	mode     PlayMode
	width    int
	height   int
	quitting bool
	back     bool
	saved    bool // Whether the solve has been recorded
	best     *levels.SolveData
}

// ReplayOption configures a ReplayModel.
type ReplayOption func(*ReplayModel)

// WithLevel judges the replay against level and records solves in store,
// which may be nil.
func WithLevel(level levels.Level, store SolveSaver) ReplayOption {
	return func(m *ReplayModel) {
		m.level = &level
		m.store = store
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme Theme) ReplayOption {
	return func(m *ReplayModel) {
		m.theme = theme
	}
}

// WithLogger sets the logger for storage failures.
func WithLogger(logger *log.Logger) ReplayOption {
	return func(m *ReplayModel) {
		m.logger = logger
	}
}

// NewReplayModel creates a replay viewer for player using the keys and
// timing from cfg.
func NewReplayModel(title string, player Player, cfg config.AppConfig, opts ...ReplayOption) ReplayModel {
	m := ReplayModel{
		title:    title,
		player:   player,
		logger:   log.Default(),
		playback: cfg.Playback,
		keys:     NewReplayKeyMap(cfg.Keys),
		help:     help.New(),
		theme:    DefaultTheme(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the playback clock.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.interval())
}

func (m ReplayModel) interval() time.Duration {
	if m.mode == Fast {
		return time.Duration(m.playback.FastMillis) * time.Millisecond
	}
	return time.Duration(m.playback.StepMillis) * time.Millisecond
}

// Update handles messages and updates the model state.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if msg.String() == "esc" {
			m.back = true
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		if m.mode == Paused {
			m.mode = Playing
		} else {
			m.mode = Paused
		}
	case key.Matches(msg, m.keys.Fast):
		if m.mode == Fast {
			m.mode = Playing
		} else {
			m.mode = Fast
		}
	case key.Matches(msg, m.keys.Forward):
		m.mode = Paused
		m.player.Forward()
	case key.Matches(msg, m.keys.Back):
		m.mode = Paused
		m.player.StepBack()
	case key.Matches(msg, m.keys.Home):
		m.mode = Paused
		m.player.Seek(0)
	case key.Matches(msg, m.keys.End):
		m.mode = Paused
		m.player.End()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.recordSolve()
	return m, nil
}

// handleTick advances playback while playing.
func (m ReplayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.mode != Paused && !m.player.Forward() {
		m.mode = Paused
	}
	m.recordSolve()
	return m, tickCmd(m.interval())
}

// recordSolve saves the solve once a judged race is won.
func (m *ReplayModel) recordSolve() {
	if m.saved || m.level == nil {
		return
	}
	j, ok := m.player.(judged)
	if !ok || !j.IsFinished() {
		return
	}
	m.saved = true
	res := j.Result()
	if !res.Solved || m.store == nil {
		return
	}
	best, err := m.store.SaveSolve(m.level.Key(), res.Solve)
	if err != nil {
		m.logger.Warn("could not save solve", "level", m.level.ID, "error", err)
		return
	}
	m.best = &best
}

// Mode returns the playback mode.
func (m ReplayModel) Mode() PlayMode {
	return m.mode
}

// IsQuitting returns true if the viewer was closed.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the viewer was closed with esc.
func (m ReplayModel) BackToMenu() bool {
	return m.back
}

// View renders the current state to a string for display.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	sep := m.theme.HUDSeparator.Render(" | ")
	var sb strings.Builder
	sb.WriteString(m.theme.HUDTitle.Render(m.title))
	sb.WriteString(sep)
	sb.WriteString(m.theme.HUDValue.Render(fmt.Sprintf("round %d", m.player.Round())))
	sb.WriteString(sep)
	sb.WriteString(m.theme.HUDValue.Render(m.mode.String()))
	sb.WriteString("\n\n")
	sb.WriteString(RenderCourse(m.player.Course(), m.player.Cars(), m.theme))
	sb.WriteString("\n\n")
	if line := m.resultLine(); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m ReplayModel) resultLine() string {
	j, ok := m.player.(judged)
	if !ok || m.level == nil || !j.IsFinished() {
		return ""
	}
	res := j.Result()
	finishes := fmt.Sprint(res.Finishes)
	if !res.Solved {
		msg := fmt.Sprintf("Not solved: finished %s, expected %v", finishes, m.level.Finish)
		if res.LoopDetected {
			msg += " (loop)"
		}
		return m.theme.Unsolved.Render(msg)
	}
	msg := fmt.Sprintf("Solved with %d tiles in %d rounds", res.Solve.Tiles, res.Solve.Turns)
	if m.best != nil {
		msg += fmt.Sprintf(" (best %d tiles, %d rounds)", m.best.Tiles, m.best.Turns)
	}
	return m.theme.Solved.Render(msg)
}

// Run starts the Bubble Tea program with the given model.
func Run(model ReplayModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
