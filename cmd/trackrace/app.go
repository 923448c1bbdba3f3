package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trackrace/internal/config"
	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/storage"
	"github.com/vovakirdan/trackrace/internal/track"
)

// loadLevels returns the bundled levels followed by the levels of the user
// directory. A user level with a bundled ID replaces the bundled one.
func loadLevels() ([]levels.Level, error) {
	lvls, err := levels.Default()
	if err != nil {
		return nil, err
	}
	dir, err := config.ExpandHome(appConfig.Levels.Dir)
	if err != nil || dir == "" {
		return lvls, nil
	}
	if _, statErr := os.Stat(dir); errors.Is(statErr, fs.ErrNotExist) {
		return lvls, nil
	}

	user, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		logger.Warn("could not read level directory", "dir", dir, "error", err)
		return lvls, nil
	}
	index := make(map[string]int, len(lvls))
	for i, lvl := range lvls {
		index[lvl.ID] = i
	}
	for _, lvl := range user {
		if i, ok := index[lvl.ID]; ok {
			lvls[i] = lvl
			continue
		}
		index[lvl.ID] = len(lvls)
		lvls = append(lvls, lvl)
	}
	logger.Debug("loaded user levels", "dir", dir, "count", len(user))
	return lvls, nil
}

// openStore opens the configured database. Callers that can work without
// it log the error and carry on with a nil store.
func openStore() (*storage.Store, error) {
	return storage.Open(appConfig.Storage.DBPath)
}

// Flags shared by commands that pick a level.
var (
	flagCars   int
	flagFinish string
)

func addLevelFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagCars, "cars", 0, "Build a custom level with this many cars")
	cmd.Flags().StringVar(&flagFinish, "finish", "", `Finish order of the custom level, e.g. "2 0 1"`)
}

// resolveLevel picks the level named by args, or the custom level described
// by --cars and --finish.
func resolveLevel(lvls []levels.Level, args []string) (levels.Level, error) {
	if flagCars > 0 {
		finish, err := levels.ParseFinishOrder(flagCars, flagFinish)
		if err != nil {
			return levels.Level{}, err
		}
		lvl := levels.Custom(flagCars, finish)
		return lvl, lvl.Validate()
	}
	if len(args) == 0 {
		return levels.Level{}, fmt.Errorf("name a level or pass --cars")
	}
	return levels.Find(lvls, args[0])
}

// courseFor finds the course to race on a level: a saved course first, then
// a bundled solution.
func courseFor(lvl levels.Level, store *storage.Store) (track.Course, error) {
	if store != nil {
		c, ok, err := store.LoadCourse(lvl.Key())
		if err != nil {
			logger.Warn("could not load saved course", "level", lvl.ID, "error", err)
		} else if ok {
			logger.Debug("using saved course", "level", lvl.ID, "tiles", c.Len())
			return c, nil
		}
	}
	sols, err := levels.Solutions()
	if err != nil {
		return track.Course{}, err
	}
	if c, ok := sols[lvl.ID]; ok {
		return c, nil
	}
	return track.Course{}, fmt.Errorf("no course for level %q: import one first", lvl.ID)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
