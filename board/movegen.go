package board

import (
	"github.com/samber/lo"
)

// AvailableMoves returns the open edge ids in ascending order. Each call
// builds a fresh slice from the board.
func (b *Board) AvailableMoves() []int {
	return lo.Filter(b.index.Edges(), func(id int, _ int) bool {
		return b.cells[id].State == Open
	})
}

// IsTerminal is true once every edge has been drawn.
func (b *Board) IsTerminal() bool {
	for _, id := range b.index.Edges() {
		if b.cells[id].State == Open {
			return false
		}
	}
	return true
}

// CountOpen is len(AvailableMoves()) without the allocation.
func (b *Board) CountOpen() int {
	return lo.CountBy(b.index.Edges(), func(id int) bool {
		return b.cells[id].State == Open
	})
}

// BoxOpenCount is the number of a box's four edges that are still open.
func (b *Board) BoxOpenCount(box int) int {
	n := 0
	for _, e := range b.index.BoxEdges(box) {
		if b.cells[e].State == Open {
			n++
		}
	}
	return n
}

// BoxOpenCounts returns BoxOpenCount for every box, in box order.
func (b *Board) BoxOpenCounts() []int {
	counts := make([]int, b.index.NumBoxes())
	for box := range counts {
		counts[box] = b.BoxOpenCount(box)
	}
	return counts
}
