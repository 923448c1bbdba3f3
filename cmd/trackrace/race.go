package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/levels/formats"
	"github.com/vovakirdan/trackrace/internal/platform/tui"
	"github.com/vovakirdan/trackrace/internal/sim"
	"github.com/vovakirdan/trackrace/internal/track"
)

var (
	flagShow       bool
	flagCourseFile string
	flagCourseName string
	flagNoSave     bool
)

var raceCmd = &cobra.Command{
	Use:   "race [level]",
	Short: "Run a race and print the result",
	Long: `Run a level's race to the end and print who finished, who crashed and
whether the level is solved. Solves are recorded in the database.

The course is the one given with --course, else the saved course for the
level, else the bundled solution.

Examples:
  trackrace race 01_first_lap
  trackrace race 02_overtake --show
  trackrace race --cars 2 --finish "1 0" --course courses.yaml --name 02_overtake`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRace,
}

func init() {
	addLevelFlags(raceCmd)
	raceCmd.Flags().BoolVar(&flagShow, "show", false, "Print the course after every round")
	raceCmd.Flags().StringVar(&flagCourseFile, "course", "", "Race a course from a YAML course file")
	raceCmd.Flags().StringVar(&flagCourseName, "name", "", "Course name in the file (default: level ID)")
	raceCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the solve")
}

func runRace(_ *cobra.Command, args []string) {
	lvls, err := loadLevels()
	if err != nil {
		fatal("%v", err)
	}
	lvl, err := resolveLevel(lvls, args)
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

	var course track.Course
	if flagCourseFile != "" {
		course, err = courseFromFile(flagCourseFile, flagCourseName, lvl.ID)
	} else {
		course, err = courseFor(lvl, store)
	}
	if err != nil {
		fatal("%v", err)
	}
	if err := lvl.ValidateCourse(course); err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	race := sim.NewRace(lvl, course, tui.RaceOptions(appConfig.Race)...)
	if err := race.Run(ctx); err != nil {
		fatal("race interrupted: %v", err)
	}

	if flagShow {
		checkWidth(course)
		for i := 0; i <= race.Last(); i++ {
			fmt.Printf("Round %d\n", i)
			fmt.Println(track.RenderASCII(course, sim.Markers(race.CarsAt(i))))
		}
	}

	res := race.Result()
	printResult(lvl, res)

	if !res.Solved {
		if store != nil {
			store.Close()
		}
		os.Exit(2)
	}
	if store != nil && !flagNoSave {
		best, err := store.SaveSolve(lvl.Key(), res.Solve)
		if err != nil {
			logger.Warn("could not save solve", "level", lvl.ID, "error", err)
			return
		}
		fmt.Printf("Best: %d tiles, %d rounds\n", best.Tiles, best.Turns)
	}
}

func courseFromFile(path, name, fallback string) (track.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return track.Course{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	courses, err := formats.UnmarshalCourses(data)
	if err != nil {
		return track.Course{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if name == "" {
		name = fallback
	}
	if c, ok := courses[name]; ok {
		return c, nil
	}
	if len(courses) == 1 {
		for _, c := range courses {
			return c, nil
		}
	}
	return track.Course{}, fmt.Errorf("no course %q in %s", name, path)
}

func printResult(lvl levels.Level, res sim.Result) {
	fmt.Printf("Level:    %s (%s)\n", lvl.Name, lvl.ID)
	fmt.Printf("Expected: %v\n", lvl.Finish)
	fmt.Printf("Finished: %v\n", res.Finishes)

	var crashed []string
	for id, c := range res.Crashes {
		if c {
			crashed = append(crashed, fmt.Sprint(id))
		}
	}
	if len(crashed) > 0 {
		fmt.Printf("Crashed:  %s\n", strings.Join(crashed, " "))
	}
	if res.LoopDetected {
		fmt.Println("Loop detected: the race would never end")
	}

	if res.Solved {
		fmt.Printf("Solved with %d tiles in %d rounds\n", res.Solve.Tiles, res.Solve.Turns)
	} else {
		fmt.Println("Not solved")
	}
}

// checkWidth warns when the rendered course is wider than the terminal.
func checkWidth(c track.Course) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	r, ok := c.BoundingRect()
	if !ok {
		return
	}
	if need := 2*r.W() + 1; need > width {
		logger.Warn("course is wider than the terminal", "width", width, "needed", need)
	}
}
