package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/trackrace/internal/config"
)

// ReplayKeyMap defines the key bindings for the replay viewer.
type ReplayKeyMap struct {
	Play    key.Binding
	Fast    key.Binding
	Forward key.Binding
	Back    key.Binding
	Home    key.Binding
	End     key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Forward, k.Back, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Fast, k.Forward, k.Back},
		{k.Home, k.End, k.Help, k.Quit},
	}
}

// NewReplayKeyMap builds key bindings from the configured key names.
func NewReplayKeyMap(cfg config.KeysConfig) ReplayKeyMap {
	return ReplayKeyMap{
		Play:    binding(cfg.Play, "play/pause"),
		Fast:    binding(cfg.Fast, "fast forward"),
		Forward: binding(cfg.Forward, "step"),
		Back:    binding(cfg.Back, "step back"),
		Home:    binding(cfg.Home, "first round"),
		End:     binding(cfg.End, "last round"),
		Help:    binding(cfg.Help, "more keys"),
		Quit:    binding(cfg.Quit, "quit"),
	}
}

// DefaultReplayKeyMap returns the default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return NewReplayKeyMap(config.DefaultAppConfig().Keys)
}

func binding(keys []string, desc string) key.Binding {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(k string) MenuAction {
	switch k {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
