package domain

import "fmt"

// Color identifies a player.
type Color uint8

const (
	Black Color = iota + 1
	White
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) Valid() bool { return c == Black || c == White }

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// Cell represents a board cell state: Empty or a disc of one color.
type Cell uint8

const Empty Cell = 0

// Disc returns the cell holding a disc of color c.
func Disc(c Color) Cell { return Cell(c) }

// Color returns the owner of the disc, if any.
func (c Cell) Color() (Color, bool) {
	if c == Empty {
		return 0, false
	}
	return Color(c), true
}

func (c Cell) IsEmpty() bool { return c == Empty }

func (c Cell) String() string {
	if col, ok := c.Color(); ok {
		return col.String()
	}
	return "empty"
}

// BoardView is the read-only surface of a board. Strategies receive a
// BoardView and must use Snapshot for anything hypothetical.
type BoardView interface {
	Geometry() Geometry
	Size() int
	CellAt(c Coord) (Cell, error)
	Score(c Color) int
	CountEmpty() int
	IsFull() bool
	Snapshot() *Board
}

// Board stores cell contents row-major over the backing array; cells
// outside the playable shape are never read or written.
type Board struct {
	geo   Geometry
	cells []Cell
}

var _ BoardView = (*Board)(nil)

// NewBoard returns an empty board for geo.
func NewBoard(geo Geometry) *Board {
	return &Board{geo: geo, cells: make([]Cell, geo.size*geo.size)}
}

// NewStartBoard returns a board with the standard opening discs.
func NewStartBoard(geo Geometry) *Board {
	b := NewBoard(geo)
	if geo.shape == Hexagon {
		for i, n := range geo.Neighbors(geo.Center()) {
			col := Black
			if i%2 == 1 {
				col = White
			}
			b.set(n, Disc(col))
		}
		return b
	}
	m := geo.size / 2
	b.set(C(m-1, m-1), Disc(White))
	b.set(C(m, m), Disc(White))
	b.set(C(m, m-1), Disc(Black))
	b.set(C(m-1, m), Disc(Black))
	return b
}

func (b *Board) index(c Coord) int { return c.R*b.geo.size + c.Q }

func (b *Board) get(c Coord) Cell { return b.cells[b.index(c)] }

func (b *Board) set(c Coord, v Cell) { b.cells[b.index(c)] = v }

func (b *Board) Geometry() Geometry { return b.geo }

// Size is the width of the board's longest row.
func (b *Board) Size() int { return b.geo.size }

// CellAt returns the contents of c.
func (b *Board) CellAt(c Coord) (Cell, error) {
	if err := b.geo.check(c); err != nil {
		return Empty, err
	}
	return b.get(c), nil
}

// Place puts a disc of color col on an empty cell.
func (b *Board) Place(c Coord, col Color) error {
	if err := b.geo.check(c); err != nil {
		return err
	}
	if !col.Valid() {
		return fmt.Errorf("place at %v: invalid color %d", c, col)
	}
	if !b.get(c).IsEmpty() {
		return fmt.Errorf("%w: %v", ErrOccupiedCell, c)
	}
	b.set(c, Disc(col))
	return nil
}

// Flip toggles the disc at c between black and white.
func (b *Board) Flip(c Coord) error {
	if err := b.geo.check(c); err != nil {
		return err
	}
	col, ok := b.get(c).Color()
	if !ok {
		return fmt.Errorf("%w: %v", ErrEmptyCell, c)
	}
	b.set(c, Disc(col.Opponent()))
	return nil
}

// Score counts the discs of color col.
func (b *Board) Score(col Color) int {
	n := 0
	for _, c := range b.geo.Cells() {
		if b.get(c) == Disc(col) {
			n++
		}
	}
	return n
}

func (b *Board) CountEmpty() int {
	n := 0
	for _, c := range b.geo.Cells() {
		if b.get(c).IsEmpty() {
			n++
		}
	}
	return n
}

// IsFull reports whether no playable cell is empty.
func (b *Board) IsFull() bool {
	for _, c := range b.geo.Cells() {
		if b.get(c).IsEmpty() {
			return false
		}
	}
	return true
}

// Snapshot returns an independent deep copy.
func (b *Board) Snapshot() *Board {
	cp := &Board{geo: b.geo, cells: make([]Cell, len(b.cells))}
	copy(cp.cells, b.cells)
	return cp
}
