package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trackrace/internal/config"
	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/sim"
	"github.com/vovakirdan/trackrace/internal/track"
)

// MenuItem represents a selectable replay in the menu.
type MenuItem struct {
	Title       string
	Description string
	Open        func() ReplayModel
}

// MenuItems lists a replay for every level that has a course, followed by a
// demonstration of every tile type. store may be nil.
func MenuItems(lvls []levels.Level, courses map[string]track.Course, store SolveSaver, cfg config.AppConfig, logger *log.Logger) []MenuItem {
	var items []MenuItem
	for _, lvl := range lvls {
		course, ok := courses[lvl.ID]
		if !ok {
			continue
		}
		items = append(items, MenuItem{
			Title:       lvl.Name,
			Description: fmt.Sprintf("%d cars, finish %v, %d tiles", lvl.Cars, lvl.Finish, course.Len()),
			Open: func() ReplayModel {
				race := sim.NewRace(lvl, course, RaceOptions(cfg.Race)...)
				return NewReplayModel(lvl.Name, race, cfg, WithLevel(lvl, store), WithLogger(logger))
			},
		})
	}
	for _, t := range track.TileTypes {
		items = append(items, MenuItem{
			Title:       "Demo: " + t.Label(),
			Description: "cars arriving at random",
			Open: func() ReplayModel {
				return NewReplayModel(t.Label(), NewDemoPlayer(t, cfg.Race.Seed), cfg, WithLogger(logger))
			},
		})
	}
	return items
}

// RaceOptions converts the race config into simulator options.
func RaceOptions(cfg config.RaceConfig) []sim.Option {
	policy := sim.Always
	if cfg.SpawnPolicy == config.SpawnRandom {
		policy = sim.Random(cfg.SpawnChance)
	}
	return []sim.Option{sim.WithSeed(cfg.Seed), sim.WithSpawnPolicy(policy)}
}

// MenuModel is the Bubble Tea model for the replay picker.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	theme    Theme
	quitting bool
	selected *MenuItem // Set when user selects a replay
}

// NewMenuModel creates a new menu model.
func NewMenuModel(items []MenuItem, theme Theme) MenuModel {
	return MenuModel{
		items: items,
		width: 80,
		theme: theme,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg.String()) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("  T R A C K R A C E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a replay", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		style := m.theme.MenuItemNormal
		cursor := "  "
		if i == m.cursor {
			style = m.theme.MenuItemActive
			cursor = "> "
		}
		b.WriteString(centerText(style.Render(cursor+item.Title), m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(m.theme.HUDControls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
