package common

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/dotsboxes/board"
)

func TestUpdatePrependsMove(t *testing.T) {
	is := is.New(t)
	var child PVLine
	child.Update(PVMove{Mover: board.Min, Edge: 7}, PVLine{}, -0.5)

	var root PVLine
	root.Update(PVMove{Mover: board.Max, Edge: 3}, child, -0.5)
	is.Equal(root.Moves, []PVMove{{board.Max, 3}, {board.Min, 7}})
	is.Equal(root.Value(), -0.5)

	m, ok := root.GetPVMove()
	is.True(ok)
	is.Equal(m.Edge, 3)

	// a later, better move replaces the whole line
	root.Update(PVMove{Mover: board.Max, Edge: 5}, PVLine{}, 1)
	is.Equal(root.Moves, []PVMove{{board.Max, 5}})
	is.Equal(root.String(), "PV; val 1.0000\n1: max 5\n")
	is.Equal(root.NLBString(), "PV; val 1.0000; 1: max 5; ")

	root.Clear()
	m, ok = root.GetPVMove()
	is.True(!ok)
	is.Equal(m.Edge, -1)
}
