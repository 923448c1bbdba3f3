package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // generated on first use; empty means ~/.trackrace/host_key
	IdleTimeout time.Duration // idle sessions are closed after this long
	Theme       Theme
}

// DefaultSSHServerConfig returns the config used by trackrace serve.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Theme:       DefaultTheme(),
	}
}

// SSHServer serves the replay menu over SSH. Every connection gets its own
// races built from a fresh call to items.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	items  func() []MenuItem
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer creates a server. It does not listen until Serve.
func NewSSHServer(cfg SSHServerConfig, items func() []MenuItem, logger *log.Logger) (*SSHServer, error) {
	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	cfg.HostKeyPath = keyPath

	srv := &SSHServer{config: cfg, items: items, logger: logger}
	// Middlewares run last to first: sessions are counted, then checked for
	// a terminal, then handed to bubbletea.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newSession),
			activeterm.Middleware(),
			srv.track,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".trackrace", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the menu for one connection, sized to its terminal.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	model := NewSessionModel(s.items(), s.config.Theme)
	model.width, model.height = pty.Window.Width, pty.Window.Height
	model.menu.width, model.menu.height = pty.Window.Width, pty.Window.Height
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) track(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		n := s.active.Add(1)
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", n)
		next(sess)
		n = s.active.Add(-1)
		s.logger.Info("session ended", "user", sess.User(), "duration", time.Since(start).Round(time.Second), "active", n)
	}
}

// Sessions returns the number of connected sessions.
func (s *SSHServer) Sessions() int {
	return int(s.active.Load())
}

// Serve listens until ctx is done, then shuts down, giving open sessions
// ten seconds to finish.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "sessions", s.Sessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages a full viewing session: menu -> replay -> menu.
// It is used for SSH sessions and for the local replay picker.
type SessionModel struct {
	items    []MenuItem
	theme    Theme
	menu     MenuModel
	replay   *ReplayModel
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(items []MenuItem, theme Theme) SessionModel {
	return SessionModel{
		items: items,
		theme: theme,
		menu:  NewMenuModel(items, theme),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.replay != nil {
		return m.updateReplay(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		replay := selected.Open()
		replay.theme = m.theme
		replay.width = m.width
		replay.height = m.height
		replay.help.Width = m.width
		m.replay = &replay
		m.menu.selected = nil
		return m, m.replay.Init()
	}

	return m, cmd
}

// updateReplay handles updates when watching a replay.
func (m SessionModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replay.Update(msg)
	if replay, ok := newModel.(ReplayModel); ok {
		m.replay = &replay
	}

	if m.replay.IsQuitting() {
		if m.replay.BackToMenu() {
			m.replay = nil
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.replay != nil {
		return m.replay.View()
	}
	return m.menu.View()
}

// RunSession runs a local session with the replay picker.
func RunSession(items []MenuItem, theme Theme) error {
	p := tea.NewProgram(
		NewSessionModel(items, theme),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
