package common

import (
	"fmt"
	"strings"

	"github.com/domino14/dotsboxes/board"
)

// PVMove is one ply of a principal variation.
type PVMove struct {
	Mover board.Player
	Edge  int
}

func (m PVMove) String() string {
	return fmt.Sprintf("%v %d", m.Mover, m.Edge)
}

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []PVMove
	value float64
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(m PVMove, newPVLine PVLine, value float64) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.value = value
}

// GetPVMove returns the first move of the line. ok is false for an
// empty line.
func (pvLine *PVLine) GetPVMove() (PVMove, bool) {
	if len(pvLine.Moves) == 0 {
		return PVMove{Edge: -1}, false
	}
	return pvLine.Moves[0], true
}

func (pvLine *PVLine) Value() float64 {
	return pvLine.value
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "PV; val %.4f\n", pvLine.value)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&s, "%d: %v\n", i+1, m)
	}
	return s.String()
}

func (pvLine PVLine) NLBString() string {
	// no line breaks
	var s strings.Builder
	fmt.Fprintf(&s, "PV; val %.4f; ", pvLine.value)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&s, "%d: %v; ", i+1, m)
	}
	return s.String()
}
