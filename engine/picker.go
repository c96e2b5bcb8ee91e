package engine

import (
	"sort"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// pickerStage names the staged move-ordering pipeline: the picker hands moves to the
// search one stage at a time rather than sorting the whole legal-move list up front,
// so a node that cuts off early (the common case) never pays for ordering moves it
// never looks at.
type pickerStage int

const (
	stagePV pickerStage = iota
	stageTT
	stageGoodCaptures
	stageKiller
	stageCounterMove
	stageQuiets
	stageBadCaptures
	stageDone
)

// scoredMove pairs a legal move with the ordering score the current stage assigned
// it, so stageGoodCaptures/stageQuiets/stageBadCaptures can each sort their own slice
// independently instead of maintaining one global order up front.
type scoredMove struct {
	move  dragon.Move
	score int32
}

// Picker is the per-node move-ordering state machine. One Picker is created per
// search node (cheap: it borrows the node's pre-generated legal-move slice rather
// than copying it) and stepped forward with Next until it's exhausted. The pipeline
// runs PV move, then TT move, then SEE-non-negative captures, then killers, then the
// counter-move, then quiets ordered by history, then SEE-negative captures last.
type Picker struct {
	pos    *Position
	stage  pickerStage
	height int

	pvMove       dragon.Move
	ttMove       dragon.Move
	killers      *[NKillersPerPly]dragon.Move
	counterMove  dragon.Move
	history      *ButterflyHistory
	contHist     [len(contHistOffsets)]*ContinuationHistory
	contKey      [len(contHistOffsets)]contHistKey
	capHist      *CaptureHistory
	sideToMove   dragon.Color

	remaining []dragon.Move // legal moves not yet emitted by an earlier stage
	emitted   map[dragon.Move]bool

	goodCaptures []scoredMove
	badCaptures  []scoredMove
	quiets       []scoredMove
	bufIdx       int
}

// PickerContext bundles the move-ordering tables a node needs; constructed once per
// search and threaded down through every node rather than recreated per-node.
type PickerContext struct {
	Killers     *KillerTable
	CounterMove *CounterMoveTable
	History     *ButterflyHistory
	ContHist    [len(contHistOffsets)]*ContinuationHistory
	CapHist     *CaptureHistory
}

// contHistKey is the (piece, to-square) of the ancestor move a ContinuationHistory
// slot is paired against, resolved once in NewPicker rather than re-walking the node
// stack on every quiet move scored.
type contHistKey struct {
	piece dragon.Piece
	to    uint8
	ok    bool
}

// NewPicker builds a Picker over legalMoves for the node at height. pvMove and
// ttMove may be NoMove or equal; nodes supplies the ancestor moves the counter-move
// lookup and continuation history need, at offsets relative to height.
func NewPicker(pos *Position, legalMoves []dragon.Move, height int, pvMove, ttMove dragon.Move, nodes *NodeStack, ctx *PickerContext) *Picker {
	p := &Picker{
		pos:        pos,
		stage:      stagePV,
		height:     height,
		pvMove:     pvMove,
		ttMove:     ttMove,
		history:    ctx.History,
		contHist:   ctx.ContHist,
		capHist:    ctx.CapHist,
		sideToMove: pos.SideToMove(),
		remaining:  legalMoves,
		emitted:    make(map[dragon.Move]bool, len(legalMoves)),
	}
	if ctx.Killers != nil {
		p.killers = ctx.Killers.At(height)
	}
	for i, offset := range contHistOffsets {
		anc := nodes.Ancestor(height, offset)
		if anc == nil || anc.Piece == dragon.Nothing {
			continue
		}
		p.contKey[i] = contHistKey{piece: anc.Piece, to: anc.Move.To(), ok: true}
	}
	if prev := nodes.Ancestor(height, 1); prev != nil && prev.Move != NoMove && ctx.CounterMove != nil {
		p.counterMove = ctx.CounterMove.Get(p.sideToMove, prev.Move, prev.Piece)
	}
	return p
}

func (p *Picker) take(move dragon.Move) bool {
	if move == NoMove || p.emitted[move] {
		return false
	}
	for i, m := range p.remaining {
		if m == move {
			p.remaining[i] = p.remaining[len(p.remaining)-1]
			p.remaining = p.remaining[:len(p.remaining)-1]
			p.emitted[move] = true
			return true
		}
	}
	return false
}

func (p *Picker) classifyRemaining() {
	p.goodCaptures = p.goodCaptures[:0]
	p.badCaptures = p.badCaptures[:0]
	p.quiets = p.quiets[:0]

	for _, move := range p.remaining {
		if victim, isCapture := p.pos.CapturedPiece(move); isCapture {
			see := p.pos.See(move)
			mover, _ := p.pos.PieceAt(move.From())
			score := int32(see)*64 + p.capHistScore(mover, victim, move)
			if see >= 0 {
				p.goodCaptures = append(p.goodCaptures, scoredMove{move, score})
			} else {
				p.badCaptures = append(p.badCaptures, scoredMove{move, score})
			}
		} else {
			p.quiets = append(p.quiets, scoredMove{move, p.quietScore(move)})
		}
	}
	p.remaining = p.remaining[:0]

	sort.Slice(p.goodCaptures, func(i, j int) bool { return p.goodCaptures[i].score > p.goodCaptures[j].score })
	sort.Slice(p.badCaptures, func(i, j int) bool { return p.badCaptures[i].score > p.badCaptures[j].score })
	sort.Slice(p.quiets, func(i, j int) bool { return p.quiets[i].score > p.quiets[j].score })
}

func (p *Picker) capHistScore(mover, victim dragon.Piece, move dragon.Move) int32 {
	if p.capHist == nil {
		return 0
	}
	return p.capHist.Score(mover, victim, move)
}

func (p *Picker) quietScore(move dragon.Move) int32 {
	var score int32
	if p.history != nil {
		score += p.history.Score(p.sideToMove, move)
	}
	piece, ok := p.pos.PieceAt(move.From())
	if !ok {
		return score
	}
	for i, key := range p.contKey {
		if !key.ok || p.contHist[i] == nil {
			continue
		}
		score += p.contHist[i].Score(key.piece, key.to, piece, move)
	}
	return score
}

// Next returns the next move in staged order, or (NoMove, stageDone) once every
// legal move has been emitted exactly once.
func (p *Picker) Next() (dragon.Move, pickerStage) {
	for {
		switch p.stage {
		case stagePV:
			p.stage = stageTT
			if p.take(p.pvMove) {
				return p.pvMove, stagePV
			}

		case stageTT:
			p.stage = stageGoodCaptures
			if p.take(p.ttMove) {
				return p.ttMove, stageTT
			}
			p.classifyRemaining()

		case stageGoodCaptures:
			if p.bufIdx < len(p.goodCaptures) {
				m := p.goodCaptures[p.bufIdx].move
				p.bufIdx++
				return m, stageGoodCaptures
			}
			p.bufIdx = 0
			p.stage = stageKiller

		case stageKiller:
			if p.killers != nil {
				for _, k := range p.killers {
					if p.takeQuiet(k) {
						return k, stageKiller
					}
				}
			}
			p.stage = stageCounterMove

		case stageCounterMove:
			p.stage = stageQuiets
			if p.takeQuiet(p.counterMove) {
				return p.counterMove, stageCounterMove
			}

		case stageQuiets:
			if p.bufIdx < len(p.quiets) {
				m := p.quiets[p.bufIdx].move
				p.bufIdx++
				return m, stageQuiets
			}
			p.bufIdx = 0
			p.stage = stageBadCaptures

		case stageBadCaptures:
			if p.bufIdx < len(p.badCaptures) {
				m := p.badCaptures[p.bufIdx].move
				p.bufIdx++
				return m, stageBadCaptures
			}
			p.stage = stageDone

		case stageDone:
			return NoMove, stageDone
		}
	}
}

// takeQuiet removes move from the quiets buffer if present (killers/counter-move are
// never captures, but may already have been classified and queued there).
func (p *Picker) takeQuiet(move dragon.Move) bool {
	if move == NoMove || p.emitted[move] {
		return false
	}
	for i, sm := range p.quiets {
		if sm.move == move {
			p.quiets = append(p.quiets[:i], p.quiets[i+1:]...)
			p.emitted[move] = true
			return true
		}
	}
	return false
}
