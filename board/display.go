package board

import "strings"

// ToDisplayText renders the board row by row, one glyph per cell:
//
//	*   vertex
//	?   open edge
//	- | drawn edge that completed nothing
//	X x drawn by max, completing one (X) or two (x) boxes
//	O o drawn by min, completing one (O) or two (o) boxes
//
// Filler cells are blank.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(glyph(b.cells[r*b.dim+c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(c Cell) byte {
	switch c.Kind {
	case Vertex:
		return '*'
	case Filler:
		return ' '
	}
	if c.State == Open {
		return '?'
	}
	switch c.BoxesCompleted {
	case 0:
		if c.Kind == HorizontalEdge {
			return '-'
		}
		return '|'
	case 1:
		if c.DrawnBy == Max {
			return 'X'
		}
		return 'O'
	default:
		if c.DrawnBy == Max {
			return 'x'
		}
		return 'o'
	}
}
