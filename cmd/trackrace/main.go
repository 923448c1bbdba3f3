// trackrace runs and replays races on tile courses in the terminal.
//
// Usage:
//
//	trackrace levels              - List levels and best solves
//	trackrace race <level>        - Run a race and print the result
//	trackrace verify              - Check the bundled solutions
//	trackrace demo <tile>         - Show a tile demonstration
//	trackrace export [file]       - Write saved courses as YAML
//	trackrace import <file>       - Save courses from a YAML file
//	trackrace replay [level]      - Watch a race in the replay viewer
//	trackrace solves              - Show recorded best solves
//	trackrace serve               - Host the replay viewer over SSH
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.trackrace, ./configs)
//	--db <path>          - Database path (default from config)
//	--levels-dir <path>  - Extra level directory (default from config)
//	--log-level <level>  - debug, info, warn or error
//	--seed <value>       - RNG seed for random spawn policies
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trackrace/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
	flagLogLevel  string
	flagSeed      int64

	appConfig config.AppConfig
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trackrace",
	Short: "Trackrace - build courses and race cars through them",
	Long: `Trackrace simulates cars driving over a course of tiles. Every level
asks for the cars to finish in a particular order.

Available commands:
  levels   - Show all levels
  race     - Run a race and print the result
  verify   - Check the bundled solutions
  demo     - Show how one tile type behaves
  export   - Write saved courses to YAML
  import   - Read courses from YAML
  replay   - Watch races in the replay viewer
  solves   - Show best solves
  serve    - Start SSH server for remote viewing

Examples:
  trackrace levels
  trackrace race 01_first_lap --show
  trackrace race --cars 3 --finish "2 0 1" --course my.yaml --name mine
  trackrace replay
  trackrace serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level files (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config)")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(raceCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(solvesCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config, applies global flag overrides and builds the
// logger every command shares.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagSeed != 0 {
		cfg.Race.Seed = flagSeed
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "trackrace",
		Level:           level,
	})
	appConfig = cfg
	return nil
}
