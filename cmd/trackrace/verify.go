package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/sim"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every bundled solution solves its level",
	Args:  cobra.NoArgs,
	Run:   runVerify,
}

func runVerify(cmd *cobra.Command, _ []string) {
	lvls, err := loadLevels()
	if err != nil {
		fatal("%v", err)
	}
	sols, err := levels.Solutions()
	if err != nil {
		fatal("%v", err)
	}

	ids := make([]string, 0, len(sols))
	for id := range sols {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	failed := 0
	for _, id := range ids {
		lvl, err := levels.Find(lvls, id)
		if err != nil {
			fmt.Printf("  FAIL  %s: %v\n", id, err)
			failed++
			continue
		}
		if err := lvl.ValidateCourse(sols[id]); err != nil {
			fmt.Printf("  FAIL  %s: %v\n", id, err)
			failed++
			continue
		}
		// Bundled solutions are checked with cars always entering.
		race := sim.NewRace(lvl, sols[id])
		if err := race.Run(context.Background()); err != nil {
			fatal("%v", err)
		}
		res := race.Result()
		if !res.Solved {
			fmt.Printf("  FAIL  %s: finished %v, expected %v\n", id, res.Finishes, lvl.Finish)
			failed++
			continue
		}
		fmt.Printf("  ok    %s: %d tiles, %d rounds\n", id, res.Solve.Tiles, res.Solve.Turns)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d solutions failed\n", failed, len(ids))
		os.Exit(1)
	}
}
