package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/clanpj/lisao/engine"
)

var VersionString = "0.0eg Pichu 1" + "CPU " + runtime.GOOS + "-" + runtime.GOARCH

func main() {
	defer profile.Start().Stop()

	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	fmt.Println("Starting...", VersionString)

	board := dragon.ParseFen(dragon.Startpos)
	pos := engine.NewPosition(&board)

	depth := 10
	if len(os.Args) > 1 {
		fmt.Sscanf(os.Args[1], "%d", &depth)
	}

	uciSearch(logger, pos, depth, 0)
}

// uciSearch is a thin timing/printing wrapper around Engine.Search: time the call,
// print "info"/"bestmove" lines the way a UCI frontend would.
func uciSearch(logger zerolog.Logger, pos *engine.Position, depth int, moveTimeMs int) {
	eng := engine.NewEngine(logger)

	limits := engine.Limits{Depth: depth}
	if moveTimeMs > 0 {
		limits.MoveTime = time.Duration(moveTimeMs) * time.Millisecond
	}

	start := time.Now()
	result := eng.Search(context.Background(), pos, make(engine.RepetitionTable), limits)
	elapsed := time.Since(start)

	if len(result.Lines) == 0 {
		fmt.Println("bestmove (none)")
		return
	}

	best := result.Lines[0]
	nps := uint64(0)
	if elapsed.Seconds() > 0 {
		nps = uint64(float64(result.Stats.Nodes) / elapsed.Seconds())
	}

	fmt.Println("info string nodes:", result.Stats.Nodes, "tt-hits:", result.Stats.TTHits,
		"null-cuts:", result.Stats.NullMoveCuts, "beta-cuts:", result.Stats.BetaCuts,
		"1st-child-cuts:", result.Stats.FirstChildCuts, "lmr:", result.Stats.LMRReductions,
		"futility:", result.Stats.FutilityPrunes, "razor:", result.Stats.RazorPrunes)
	fmt.Println("info depth", result.Depth, "score cp", best.Score, "nodes", result.Stats.Nodes,
		"time", elapsed.Milliseconds(), "nps", nps, "pv", pvString(best.PV))

	bestMove := dragon.Move(0)
	if len(best.PV) > 0 {
		bestMove = best.PV[0]
	}
	fmt.Println("bestmove", bestMove.String())
}

func pvString(pv []dragon.Move) string {
	s := ""
	for i, m := range pv {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
