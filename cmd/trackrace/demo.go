package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trackrace/internal/sim"
	"github.com/vovakirdan/trackrace/internal/track"
)

var (
	flagDemoRounds int
	flagDemoDelay  int
)

var demoCmd = &cobra.Command{
	Use:   "demo <tile>",
	Short: "Show how a tile type handles traffic",
	Long: `Print rounds of a small course built around one tile, with cars arriving
at random from every entrance.

Tile names: straight, turn, finish, light_intersection, yield_intersection,
light_turns, merge, light_forward_turn.

Examples:
  trackrace demo merge
  trackrace demo light_intersection --rounds 20 --delay 300`,
	Args: cobra.ExactArgs(1),
	Run:  runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoRounds, "rounds", 12, "Number of rounds to print")
	demoCmd.Flags().IntVar(&flagDemoDelay, "delay", 0, "Milliseconds to wait between rounds")
}

func runDemo(_ *cobra.Command, args []string) {
	t, err := track.ParseTileType(args[0])
	if err != nil {
		fatal("%v", err)
	}

	s := sim.NewDemo(t, appConfig.Race.Seed)
	fmt.Printf("%s demo\n\n", t.Label())
	for i := 0; i < flagDemoRounds && !s.IsFinished(); i++ {
		s.RunRound()
		var left int
		for _, ev := range s.Events() {
			if ev.Kind == sim.EventCrashed {
				left++
			}
		}
		fmt.Printf("Round %d\n", s.Round())
		fmt.Println(track.RenderASCII(s.Course(), sim.Markers(s.Cars())))
		// Cars leave a demo by driving off its exits.
		logger.Debug("round", "cars", len(s.Cars()), "left", left)
		if flagDemoDelay > 0 {
			time.Sleep(time.Duration(flagDemoDelay) * time.Millisecond)
		}
	}
}
