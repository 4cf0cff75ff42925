package turnplayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/dotsboxes/board"
)

var ErrUnrecognizedMove = errors.New("unrecognized move")

// ParseMove turns command fields into an edge id. A move is either the
// edge id itself ("7") or the grid coordinates of the edge cell, as
// "row col" or "row,col".
func ParseMove(b *board.Board, fields []string) (int, error) {
	if len(fields) == 1 && strings.Contains(fields[0], ",") {
		fields = strings.SplitN(fields[0], ",", 2)
	}
	var edge int
	switch len(fields) {
	case 1:
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrUnrecognizedMove, fields[0])
		}
		edge = id
	case 2:
		row, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return 0, fmt.Errorf("%w: bad row %q", ErrUnrecognizedMove, fields[0])
		}
		col, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return 0, fmt.Errorf("%w: bad column %q", ErrUnrecognizedMove, fields[1])
		}
		if row < 0 || col < 0 || row >= b.Dim() || col >= b.Dim() {
			return 0, fmt.Errorf("%w: %d,%d is off the board", ErrUnrecognizedMove, row, col)
		}
		edge = row*b.Dim() + col
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnrecognizedMove, strings.Join(fields, " "))
	}
	if edge < 0 || edge >= b.NumCells() || !b.Cell(edge).IsEdge() {
		return 0, fmt.Errorf("%w: %d is not an edge", board.ErrInvalidMove, edge)
	}
	return edge, nil
}

// ParsePlayer reads "max" or "min".
func ParsePlayer(s string) (board.Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max":
		return board.Max, nil
	case "min":
		return board.Min, nil
	}
	return 0, fmt.Errorf("valid players are 'max' and 'min', got %q", s)
}
