package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trackrace/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeTheme  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the trackrace SSH server",
	Long: `Start an SSH server that lets users connect and watch replays.

Each SSH connection gets its own session with the replay menu. Races are
never shared between sessions. Solves watched over SSH are not recorded.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.trackrace/host_key

Examples:
  trackrace serve                           # Listen on :23234 with auto-generated key
  trackrace serve --ssh :2222               # Listen on port 2222
  trackrace serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeTheme, "theme", "", "Color theme: default, mono")
}

func runServe(_ *cobra.Command, _ []string) {
	lvls, err := loadLevels()
	if err != nil {
		fatal("%v", err)
	}
	// Only bundled solutions and user level courses are served; the local
	// database stays private to this machine.
	courses := availableCourses(lvls, nil)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Theme = tui.ThemeByName(flagServeTheme)

	items := func() []tui.MenuItem {
		return tui.MenuItems(lvls, courses, nil, appConfig, logger)
	}
	server, err := tui.NewSSHServer(cfg, items, logger)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting trackrace SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Serve(ctx); err != nil {
		fatal("server: %v", err)
	}
}
