package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trackrace/internal/config"
	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/platform/tui"
	"github.com/vovakirdan/trackrace/internal/sim"
	"github.com/vovakirdan/trackrace/internal/storage"
	"github.com/vovakirdan/trackrace/internal/track"
)

var (
	flagTheme string
	flagSpeed string
)

var replayCmd = &cobra.Command{
	Use:   "replay [level]",
	Short: "Watch a race in the replay viewer",
	Long: `Open the replay viewer. With a level, watch that level's race; without
one, pick a race or a tile demo from a menu.

Controls:
  Space/P    - Play/Pause
  F          - Fast forward
  Right/L    - Step forward
  Left/H     - Step back
  Home/G     - First round, End/Shift+G - Last round
  ?          - More keys
  Esc        - Back to menu
  Q/Ctrl+C   - Quit

Speed presets: slow, normal, fast

Examples:
  trackrace replay
  trackrace replay 02_overtake --speed fast
  trackrace replay --cars 3 --finish "2 1 0"`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	addLevelFlags(replayCmd)
	replayCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, mono")
	replayCmd.Flags().StringVar(&flagSpeed, "speed", "", "Playback preset: slow, normal, fast")
}

func runReplay(_ *cobra.Command, args []string) {
	if flagSpeed != "" {
		config.ApplyPlaybackPreset(&appConfig, config.PlaybackPreset(flagSpeed))
	}
	theme := tui.ThemeByName(flagTheme)

	lvls, err := loadLevels()
	if err != nil {
		fatal("%v", err)
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	if len(args) == 0 && flagCars == 0 {
		items := tui.MenuItems(lvls, availableCourses(lvls, store), saver(store), appConfig, logger)
		if err := tui.RunSession(items, theme); err != nil {
			fatal("running viewer: %v", err)
		}
		return
	}

	lvl, err := resolveLevel(lvls, args)
	if err != nil {
		fatal("%v", err)
	}
	course, err := courseFor(lvl, store)
	if err != nil {
		fatal("%v", err)
	}
	if err := lvl.ValidateCourse(course); err != nil {
		fatal("%v", err)
	}
	if width, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if r, ok := course.BoundingRect(); ok && 2*r.W()+1 > width {
			logger.Warn("course is wider than the terminal", "width", width)
		}
	}

	race := sim.NewRace(lvl, course, tui.RaceOptions(appConfig.Race)...)
	model := tui.NewReplayModel(lvl.Name, race, appConfig,
		tui.WithLevel(lvl, saver(store)),
		tui.WithTheme(theme),
		tui.WithLogger(logger),
	)
	if err := tui.Run(model); err != nil {
		fatal("running viewer: %v", err)
	}
}

// availableCourses collects a course for every level that has one.
func availableCourses(lvls []levels.Level, store *storage.Store) map[string]track.Course {
	out := make(map[string]track.Course)
	for _, lvl := range lvls {
		if c, err := courseFor(lvl, store); err == nil {
			out[lvl.ID] = c
		}
	}
	return out
}

// saver avoids handing the viewer a typed nil store.
func saver(store *storage.Store) tui.SolveSaver {
	if store == nil {
		return nil
	}
	return store
}
