package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/levels/formats"
	"github.com/vovakirdan/trackrace/internal/track"
)

var flagWithSolutions bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write saved courses as YAML",
	Long: `Write the saved course of every level to a YAML course file, keyed by
level ID. Without a file the YAML goes to stdout.

Examples:
  trackrace export courses.yaml
  trackrace export --solutions`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save courses from a YAML course file",
	Long: `Read a YAML course file and save each course under the level with the
same ID. Courses using tiles banned on their level are rejected.`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagWithSolutions, "solutions", false, "Use bundled solutions for levels without a saved course")
}

func runExport(_ *cobra.Command, args []string) {
	lvls, err := loadLevels()
	if err != nil {
		fatal("%v", err)
	}
	store, err := openStore()
	if err != nil {
		fatal("cannot open database: %v", err)
	}
	defer store.Close()

	var sols map[string]track.Course
	if flagWithSolutions {
		if sols, err = levels.Solutions(); err != nil {
			fatal("%v", err)
		}
	}

	courses := make(map[string]track.Course)
	for _, lvl := range lvls {
		c, ok, err := store.LoadCourse(lvl.Key())
		if err != nil {
			fatal("%v", err)
		}
		if !ok {
			if c, ok = sols[lvl.ID]; !ok {
				continue
			}
		}
		courses[lvl.ID] = c
	}

	data, err := formats.MarshalCourses(courses)
	if err != nil {
		fatal("%v", err)
	}
	if len(args) == 0 {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		fatal("cannot write %s: %v", args[0], err)
	}
	logger.Info("exported courses", "file", args[0], "count", len(courses))
}

func runImport(_ *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fatal("cannot read %s: %v", args[0], err)
	}
	courses, err := formats.UnmarshalCourses(data)
	if err != nil {
		fatal("%v", err)
	}
	lvls, err := loadLevels()
	if err != nil {
		fatal("%v", err)
	}
	store, err := openStore()
	if err != nil {
		fatal("cannot open database: %v", err)
	}
	defer store.Close()

	imported := 0
	for _, lvl := range lvls {
		c, ok := courses[lvl.ID]
		if !ok {
			continue
		}
		delete(courses, lvl.ID)
		if err := lvl.ValidateCourse(c); err != nil {
			logger.Warn("skipping course", "level", lvl.ID, "error", err)
			continue
		}

		// The edit history saves every new version through the autosave hook.
		previous, ok, err := store.LoadCourse(lvl.Key())
		if err != nil || !ok {
			previous = track.NewCourse()
		}
		edit := track.NewCourseEdit(previous)
		edit.OnChange = store.Autosave(lvl.Key(), logger)
		edit.SetCourse(c)
		imported++
		fmt.Printf("  %s: %d tiles\n", lvl.ID, c.Len())
	}
	for name := range courses {
		logger.Warn("no level for course", "name", name)
	}
	logger.Info("imported courses", "file", args[0], "count", imported)
}
