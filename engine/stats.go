package engine

// Stats accumulates search-wide counters for one Engine.Search call, incremented by
// engine/search.go and engine/qsearch.go. NonLeafs, Mates and CounterMoveCuts are
// not incremented anywhere and stay zero.
type Stats struct {
	Nodes    uint64
	QNodes   uint64
	NonLeafs uint64
	Mates    uint64

	TTHits      uint64
	TTBetaCuts  uint64
	TTAlphaCuts uint64
	TTExactHits uint64

	NullMoveTries uint64
	NullMoveCuts  uint64

	FutilityPrunes        uint64
	ReverseFutilityPrunes uint64
	RazorPrunes           uint64
	LMPPrunes      uint64
	LMRReductions  uint64

	SingularExtensions uint64
	CheckExtensions    uint64

	BetaCuts       uint64
	FirstChildCuts uint64

	KillerCuts      uint64
	CounterMoveCuts uint64

	PosRepetitions      uint64
	UpcomingRepetitions uint64

	QStandPatCuts uint64
	QDeltaPrunes  uint64
}

// Add folds other's counters into s, for combining per-worker stats after a Lazy-SMP
// search (each worker accumulates into its own Stats to avoid false sharing).
func (s *Stats) Add(other *Stats) {
	s.Nodes += other.Nodes
	s.QNodes += other.QNodes
	s.NonLeafs += other.NonLeafs
	s.Mates += other.Mates
	s.TTHits += other.TTHits
	s.TTBetaCuts += other.TTBetaCuts
	s.TTAlphaCuts += other.TTAlphaCuts
	s.TTExactHits += other.TTExactHits
	s.NullMoveTries += other.NullMoveTries
	s.NullMoveCuts += other.NullMoveCuts
	s.FutilityPrunes += other.FutilityPrunes
	s.ReverseFutilityPrunes += other.ReverseFutilityPrunes
	s.RazorPrunes += other.RazorPrunes
	s.LMPPrunes += other.LMPPrunes
	s.LMRReductions += other.LMRReductions
	s.SingularExtensions += other.SingularExtensions
	s.CheckExtensions += other.CheckExtensions
	s.BetaCuts += other.BetaCuts
	s.FirstChildCuts += other.FirstChildCuts
	s.KillerCuts += other.KillerCuts
	s.CounterMoveCuts += other.CounterMoveCuts
	s.PosRepetitions += other.PosRepetitions
	s.UpcomingRepetitions += other.UpcomingRepetitions
	s.QStandPatCuts += other.QStandPatCuts
	s.QDeltaPrunes += other.QDeltaPrunes
}
