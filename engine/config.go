package engine

import (
	"fmt"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// NoMove is the sentinel "no move" value: the zero dragontoothmg.Move is never a
// legal move.
const NoMove dragon.Move = 0

const (
	MinDepth = 1
	// MaxDepth (as MaxPly) sizes the ply-indexed node-record stack (engine/node.go)
	// and killer table (engine/killers.go); NegaMax and QSearch stop recursing at
	// height MaxPly-1.
	MaxDepth = 126
	MaxPly   = MaxDepth
)

// Options bundles every tunable the search design names: pruning/reduction/extension
// toggles and the margins that gate them. These live on a struct rather than
// package-level vars so more than one Engine (e.g. under test) never shares state.
type Options struct {
	UseTT               bool
	UsePosRepetition    bool
	UseUpcomingRepCheck bool
	UseNullMove         bool
	UseLMR              bool
	UseLMP              bool
	UseFutility         bool
	UseReverseFutility  bool
	UseRazoring         bool
	UseSingularExt      bool
	UseCheckExtension   bool
	UseAspirationWindow bool

	SearchDepth  int // default iterative-deepening ceiling, overridable per search
	QSearchDepth int

	NullMoveMinDepth int
	NullMoveBaseR    int

	FutilityMaxDepth    int
	FutilityMarginPerPly EvalCp

	ReverseFutilityMaxDepth     int
	ReverseFutilityMarginPerPly EvalCp

	RazorMaxDepth     int
	RazorMarginPerPly EvalCp
	RazorBase         EvalCp

	SingularMinDepth int

	AspirationBase EvalCp

	Threads int
	HashMB  int
}

// DefaultOptions returns every heuristic toggle and margin at its default setting,
// tuned to the conventional values used by engines implementing this full heuristic
// set.
func DefaultOptions() Options {
	return Options{
		UseTT:               true,
		UsePosRepetition:    true,
		UseUpcomingRepCheck: true,
		UseNullMove:         true,
		UseLMR:              true,
		UseLMP:              true,
		UseFutility:         true,
		UseReverseFutility:  true,
		UseRazoring:         true,
		UseSingularExt:      true,
		UseCheckExtension:   true,
		UseAspirationWindow: true,

		SearchDepth:  64,
		QSearchDepth: 16,

		NullMoveMinDepth: 3,
		NullMoveBaseR:    3,

		FutilityMaxDepth:     6,
		FutilityMarginPerPly: 80,

		ReverseFutilityMaxDepth:     6,
		ReverseFutilityMarginPerPly: 80,

		RazorMaxDepth:     4,
		RazorMarginPerPly: 150,
		RazorBase:         1000,

		SingularMinDepth: 6,

		AspirationBase: 20,

		Threads: 1,
		HashMB:  64,
	}
}

// ConfigParam is a named, bounded handle onto a single tunable. It lets an external
// tuner (out of scope) walk and set every heuristic toggle/margin behind
// Engine.Configure without the wire protocol needing to know the struct layout.
type ConfigParam struct {
	Descr string
	Min   int
	Max   int
	Get   func() int
	Set   func(val int)
}

func (p ConfigParam) String() string {
	return fmt.Sprintf("%s [%d..%d]", p.Descr, p.Min, p.Max)
}

// registerTunables builds the ConfigParam list for a live Options value.
// Bools are exposed as 0/1 so one Get/Set shape covers both kinds of tunable.
func registerTunables(o *Options) []ConfigParam {
	params := make([]ConfigParam, 0, 24)

	regBool := func(descr string, p *bool) {
		params = append(params, ConfigParam{
			Descr: descr, Min: 0, Max: 1,
			Get: func() int {
				if *p {
					return 1
				}
				return 0
			},
			Set: func(val int) { *p = val != 0 },
		})
	}
	regInt := func(descr string, p *int, min, max int) {
		params = append(params, ConfigParam{
			Descr: descr, Min: min, Max: max,
			Get: func() int { return *p },
			Set: func(val int) { *p = val },
		})
	}
	regEval := func(descr string, p *EvalCp, min, max int) {
		params = append(params, ConfigParam{
			Descr: descr, Min: min, Max: max,
			Get: func() int { return int(*p) },
			Set: func(val int) { *p = EvalCp(val) },
		})
	}

	regBool("UseTT", &o.UseTT)
	regBool("UsePosRepetition", &o.UsePosRepetition)
	regBool("UseUpcomingRepCheck", &o.UseUpcomingRepCheck)
	regBool("UseNullMove", &o.UseNullMove)
	regBool("UseLMR", &o.UseLMR)
	regBool("UseLMP", &o.UseLMP)
	regBool("UseFutility", &o.UseFutility)
	regBool("UseReverseFutility", &o.UseReverseFutility)
	regBool("UseRazoring", &o.UseRazoring)
	regBool("UseSingularExt", &o.UseSingularExt)
	regBool("UseCheckExtension", &o.UseCheckExtension)
	regBool("UseAspirationWindow", &o.UseAspirationWindow)
	regInt("SearchDepth", &o.SearchDepth, 1, 1024)
	regInt("QSearchDepth", &o.QSearchDepth, 0, 64)
	regInt("NullMoveMinDepth", &o.NullMoveMinDepth, 1, 16)
	regInt("NullMoveBaseR", &o.NullMoveBaseR, 1, 8)
	regInt("FutilityMaxDepth", &o.FutilityMaxDepth, 0, 16)
	regEval("FutilityMarginPerPly", &o.FutilityMarginPerPly, 0, 1000)
	regInt("ReverseFutilityMaxDepth", &o.ReverseFutilityMaxDepth, 0, 16)
	regEval("ReverseFutilityMarginPerPly", &o.ReverseFutilityMarginPerPly, 0, 1000)
	regInt("RazorMaxDepth", &o.RazorMaxDepth, 0, 16)
	regEval("RazorMarginPerPly", &o.RazorMarginPerPly, 0, 1000)
	regEval("RazorBase", &o.RazorBase, 0, 4000)
	regInt("SingularMinDepth", &o.SingularMinDepth, 1, 32)
	regEval("AspirationBase", &o.AspirationBase, 1, 400)

	return params
}
