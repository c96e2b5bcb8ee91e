package engine

import dragon "github.com/Bubblyworld/dragontoothmg"

// NodeInfo is the per-ply record the search keeps while walking down the tree, held
// in a single contiguous, ply-indexed array rather than threaded through explicit
// parameters: any node can reach an ancestor at a fixed small offset — the previous
// move for continuation history, the position two plies back for repetition checks,
// and so on — in O(1) with no parameter threading.
type NodeInfo struct {
	Move       dragon.Move // the move currently searched from this node, leading to its child
	Piece      dragon.Piece
	Zobrist    uint64
	StaticEval EvalCp
	InCheck    bool
}

func (n *NodeInfo) reset() {
	n.Move = NoMove
	n.Piece = dragon.Nothing
}

// NodeStack is a contiguous, ply-indexed array of NodeInfo covering the whole search:
// height 0 is the root, with 8 slots of headroom past MaxPly. Ancestor lookups are
// bounds-checked against the root (see Ancestor).
type NodeStack [MaxPly + 8]NodeInfo

func NewNodeStack() *NodeStack {
	return &NodeStack{}
}

// At returns the node record for height.
func (ns *NodeStack) At(height int) *NodeInfo { return &ns[height] }

// Ancestor returns the node record offset plies above height (offset in {1..6} is
// the range the search's continuation-history and repetition checks actually use).
func (ns *NodeStack) Ancestor(height, offset int) *NodeInfo {
	if height-offset < 0 {
		return nil
	}
	return &ns[height-offset]
}
