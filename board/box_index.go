package board

import (
	"fmt"
	"strconv"

	"github.com/domino14/dotsboxes/cache"
)

// BoxIndex maps each box to its four edges and each edge back to the one
// or two boxes it borders. It depends only on the board size.
type BoxIndex struct {
	size      int
	dim       int
	edges     []int
	boxEdges  [][4]int
	edgeBoxes [][]int
}

// BuildBoxIndex computes the index for a size x size board. Boxes are
// numbered row by row; box (i, j) has its top-left vertex at cell row 2i,
// column 2j. Its edges are listed top, left, bottom, right.
func BuildBoxIndex(size int) (*BoxIndex, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	dim := 2*size + 1
	bi := &BoxIndex{
		size:      size,
		dim:       dim,
		boxEdges:  make([][4]int, size*size),
		edgeBoxes: make([][]int, dim*dim),
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			if k := kindAt(r, c); k == HorizontalEdge || k == VerticalEdge {
				bi.edges = append(bi.edges, r*dim+c)
			}
		}
	}
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			box := i*size + j
			top := (2*i)*dim + 2*j + 1
			left := (2*i+1)*dim + 2*j
			bottom := (2*i+2)*dim + 2*j + 1
			right := (2*i+1)*dim + 2*j + 2
			bi.boxEdges[box] = [4]int{top, left, bottom, right}
			for _, e := range bi.boxEdges[box] {
				bi.edgeBoxes[e] = append(bi.edgeBoxes[e], box)
			}
		}
	}
	return bi, nil
}

// IndexFor returns the shared index for a board size, building it the
// first time it is asked for.
func IndexFor(size int) (*BoxIndex, error) {
	obj, err := cache.Load("boxindex-"+strconv.Itoa(size), func(string) (any, error) {
		return BuildBoxIndex(size)
	})
	if err != nil {
		return nil, err
	}
	return obj.(*BoxIndex), nil
}

func (bi *BoxIndex) Size() int {
	return bi.size
}

func (bi *BoxIndex) NumBoxes() int {
	return len(bi.boxEdges)
}

// Edges lists every edge id in ascending order. Callers must not modify
// the returned slice.
func (bi *BoxIndex) Edges() []int {
	return bi.edges
}

// BoxEdges returns the top, left, bottom and right edge of a box.
func (bi *BoxIndex) BoxEdges(box int) [4]int {
	return bi.boxEdges[box]
}

// EdgeBoxes returns the boxes bordering an edge in ascending order: one
// for a border edge, two for an interior edge, none for a non-edge cell.
func (bi *BoxIndex) EdgeBoxes(edge int) []int {
	if edge < 0 || edge >= len(bi.edgeBoxes) {
		return nil
	}
	return bi.edgeBoxes[edge]
}
