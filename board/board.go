// Package board holds the Dots-and-Boxes board: its cells, the static
// box index for a board size, move generation and move application.
package board

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
)

var (
	ErrInvalidSize = errors.New("board size must be at least 1")
	ErrInvalidMove = errors.New("invalid move")
)

// Player is one of the two sides. Max moves to increase the score, Min
// to decrease it.
type Player int8

const (
	Max Player = iota
	Min
)

func (p Player) String() string {
	if p == Max {
		return "max"
	}
	return "min"
}

func (p Player) Opponent() Player {
	return 1 - p
}

// Sign is +1 for Max and -1 for Min.
func (p Player) Sign() int {
	if p == Max {
		return 1
	}
	return -1
}

// CellKind is the role a cell plays in the board grid.
type CellKind uint8

const (
	Vertex CellKind = iota
	HorizontalEdge
	VerticalEdge
	Filler
)

func (k CellKind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case HorizontalEdge:
		return "horizontal"
	case VerticalEdge:
		return "vertical"
	}
	return "filler"
}

type EdgeState uint8

const (
	Open EdgeState = iota
	Drawn
)

// A Cell is a single position in the (2n+1)x(2n+1) grid. Only edge cells
// carry state. A drawn edge remembers who drew it and how many boxes that
// single draw finished.
type Cell struct {
	Kind           CellKind
	State          EdgeState
	DrawnBy        Player
	BoxesCompleted int8
}

func (c Cell) IsEdge() bool {
	return c.Kind == HorizontalEdge || c.Kind == VerticalEdge
}

func (c Cell) IsOpen() bool {
	return c.IsEdge() && c.State == Open
}

func (c Cell) String() string {
	if !c.IsEdge() {
		return "<" + c.Kind.String() + ">"
	}
	if c.State == Open {
		return fmt.Sprintf("<%v open>", c.Kind)
	}
	return fmt.Sprintf("<%v drawn by %v, completed %d>", c.Kind, c.DrawnBy, c.BoxesCompleted)
}

// Board is an n x n box layout. Cells are stored row-major; an edge is
// identified by the index of its cell. Boards handed out by this package
// are never modified afterwards: every move produces a new Board.
type Board struct {
	size  int
	dim   int
	cells []Cell
	index *BoxIndex
}

// NewBoard creates a board of size x size boxes with every edge open.
func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	idx, err := IndexFor(size)
	if err != nil {
		return nil, err
	}
	dim := 2*size + 1
	b := &Board{
		size:  size,
		dim:   dim,
		cells: make([]Cell, dim*dim),
		index: idx,
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			b.cells[r*dim+c] = Cell{Kind: kindAt(r, c)}
		}
	}
	return b, nil
}

// kindAt gives the canonical layout: even rows alternate vertex and
// horizontal edge, odd rows alternate vertical edge and filler.
func kindAt(row, col int) CellKind {
	if row%2 == 0 {
		if col%2 == 0 {
			return Vertex
		}
		return HorizontalEdge
	}
	if col%2 == 0 {
		return VerticalEdge
	}
	return Filler
}

// Size is the number of boxes per side.
func (b *Board) Size() int {
	return b.size
}

// Dim is the number of cells per side, 2*Size()+1.
func (b *Board) Dim() int {
	return b.dim
}

func (b *Board) NumCells() int {
	return len(b.cells)
}

func (b *Board) NumBoxes() int {
	return b.size * b.size
}

func (b *Board) Index() *BoxIndex {
	return b.index
}

// Cell returns the cell at id. It panics if id is out of range.
func (b *Board) Cell(id int) Cell {
	return b.cells[id]
}

// CellAt returns the cell at the given row and column.
func (b *Board) CellAt(row, col int) Cell {
	return b.cells[row*b.dim+col]
}

// EdgeIDs returns every edge identifier in ascending order, open or not.
func (b *Board) EdgeIDs() []int {
	return b.index.Edges()
}

func (b *Board) validEdge(id int) bool {
	return id >= 0 && id < len(b.cells) && b.cells[id].IsEdge()
}

// Copy returns a deep copy. The box index is shared, since it never changes.
func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:  b.size,
		dim:   b.dim,
		cells: cells,
		index: b.index,
	}
}

func (b *Board) Equal(o *Board) bool {
	if b.size != o.size || len(b.cells) != len(o.cells) {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit hash of the edge states. Equal boards hash equally.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 0, 8+len(b.cells))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(b.size))
	for _, c := range b.cells {
		if !c.IsEdge() {
			continue
		}
		var v byte
		if c.State == Drawn {
			v = 1 | byte(c.DrawnBy)<<1 | byte(c.BoxesCompleted)<<2
		}
		buf = append(buf, v)
	}
	return xxhash.Sum64(buf)
}

// Score sums boxesCompleted over drawn edges, positive for Max and
// negative for Min. Every box is counted once, on the edge that closed it.
func (b *Board) Score() int {
	score := 0
	for _, id := range b.index.Edges() {
		c := b.cells[id]
		if c.State == Drawn {
			score += int(c.BoxesCompleted) * c.DrawnBy.Sign()
		}
	}
	return score
}

// BoxesFor returns the number of boxes owned by p.
func (b *Board) BoxesFor(p Player) int {
	n := 0
	for _, id := range b.index.Edges() {
		c := b.cells[id]
		if c.State == Drawn && c.DrawnBy == p {
			n += int(c.BoxesCompleted)
		}
	}
	return n
}

func (b *Board) String() string {
	return b.ToDisplayText()
}
