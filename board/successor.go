package board

import "fmt"

// completions counts the boxes bordering edge whose only open edge is edge
// itself, i.e. the boxes that drawing it would finish.
func (b *Board) completions(edge int) int {
	n := 0
	for _, box := range b.index.EdgeBoxes(edge) {
		open := 0
		for _, e := range b.index.BoxEdges(box) {
			if e != edge && b.cells[e].State == Open {
				open++
			}
		}
		if open == 0 {
			n++
		}
	}
	return n
}

// ApplyMove draws edge for mover and returns the resulting board along
// with the number of boxes (0, 1 or 2) the draw completed. The receiver is
// left untouched. It fails with ErrInvalidMove if edge is out of range,
// not an edge, or already drawn.
func (b *Board) ApplyMove(edge int, mover Player) (*Board, int, error) {
	if !b.validEdge(edge) {
		return nil, 0, fmt.Errorf("%w: %d is not an edge", ErrInvalidMove, edge)
	}
	if b.cells[edge].State != Open {
		return nil, 0, fmt.Errorf("%w: edge %d is already drawn", ErrInvalidMove, edge)
	}
	completed := b.completions(edge)
	succ := b.Copy()
	succ.cells[edge].State = Drawn
	succ.cells[edge].DrawnBy = mover
	succ.cells[edge].BoxesCompleted = int8(completed)
	return succ, completed, nil
}

// ApplyMoveWithExtraTurn is ApplyMove under the turn-again rule: the mover
// is granted another ply whenever the draw completed at least one box.
func (b *Board) ApplyMoveWithExtraTurn(edge int, mover Player) (*Board, int, bool, error) {
	succ, completed, err := b.ApplyMove(edge, mover)
	if err != nil {
		return nil, 0, false, err
	}
	return succ, completed, completed > 0, nil
}

// DrawEdges applies a sequence of moves, all by mover, and returns the
// final board. It stops at the first invalid move.
func (b *Board) DrawEdges(mover Player, edges ...int) (*Board, error) {
	cur := b
	for _, e := range edges {
		next, _, err := cur.ApplyMove(e, mover)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
