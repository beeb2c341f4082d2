package domain

import "fmt"

// Coord is an array-index position: Q is the column and R the row.
// On hexagonal boards the pair is an axial coordinate offset so that the
// top-left array cell is (0, 0).
type Coord struct {
	Q, R int
}

// C is shorthand for Coord{Q: q, R: r}.
func C(q, r int) Coord { return Coord{Q: q, R: r} }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Q, c.R) }

func (c Coord) add(d Coord) Coord { return Coord{Q: c.Q + d.Q, R: c.R + d.R} }

// Cube is a centered cube coordinate; Q+R+S is always zero for a valid cube.
type Cube struct {
	Q, R, S int
}

// Valid reports whether the cube invariant holds.
func (c Cube) Valid() bool { return c.Q+c.R+c.S == 0 }

// Shape is the playable outline of the board.
type Shape uint8

const (
	Hexagon Shape = iota
	Square
)

func (s Shape) String() string {
	switch s {
	case Hexagon:
		return "hex"
	case Square:
		return "square"
	default:
		return "unknown"
	}
}

// Placement classifies a coordinate against a geometry.
type Placement uint8

const (
	OnBoard Placement = iota
	OffShape
	OffGrid
)

// Minimum board dimensions.
const (
	MinHexSide    = 3
	MinSquareSize = 4
)

var (
	hexDirections = []Coord{
		{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1},
	}
	squareDirections = []Coord{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}
)

// Geometry describes the grid: its shape, storage size and adjacency.
// It is a small immutable value and safe to copy.
type Geometry struct {
	shape Shape
	size  int
	side  int
}

// NewHexGeometry returns a hexagon with the given side length. The backing
// array is (2*side-1) square with the two opposite corners carved out.
func NewHexGeometry(side int) (Geometry, error) {
	if side < MinHexSide {
		return Geometry{}, fmt.Errorf("%w: hex side %d, need at least %d", ErrBoardSize, side, MinHexSide)
	}
	return Geometry{shape: Hexagon, size: 2*side - 1, side: side}, nil
}

// NewSquareGeometry returns a square board; size must be even.
func NewSquareGeometry(size int) (Geometry, error) {
	if size < MinSquareSize || size%2 != 0 {
		return Geometry{}, fmt.Errorf("%w: square size %d, need an even size of at least %d", ErrBoardSize, size, MinSquareSize)
	}
	return Geometry{shape: Square, size: size, side: size}, nil
}

// NewGeometry dispatches on shape. For hexagons n is the side length, for
// squares it is the number of cells per row.
func NewGeometry(shape Shape, n int) (Geometry, error) {
	switch shape {
	case Hexagon:
		return NewHexGeometry(n)
	case Square:
		return NewSquareGeometry(n)
	default:
		return Geometry{}, fmt.Errorf("%w: unknown shape %d", ErrBoardSize, shape)
	}
}

func (g Geometry) Shape() Shape { return g.shape }

// Size is the width of the backing array (the longest row).
func (g Geometry) Size() int { return g.size }

// Side is the hexagon side length, or the square size.
func (g Geometry) Side() int { return g.side }

// Directions returns the unit steps used for adjacency and capture lines.
func (g Geometry) Directions() []Coord {
	if g.shape == Hexagon {
		return hexDirections
	}
	return squareDirections
}

// Locate classifies c as on the board, inside the array but outside the
// playable shape, or outside the array altogether.
func (g Geometry) Locate(c Coord) Placement {
	if c.Q < 0 || c.R < 0 || c.Q >= g.size || c.R >= g.size {
		return OffGrid
	}
	if g.shape == Square {
		return OnBoard
	}
	cube := g.ToCube(c)
	if abs(cube.Q) >= g.side || abs(cube.R) >= g.side || abs(cube.S) >= g.side {
		return OffShape
	}
	return OnBoard
}

// InBounds reports whether c is a playable cell.
func (g Geometry) InBounds(c Coord) bool { return g.Locate(c) == OnBoard }

func (g Geometry) check(c Coord) error {
	switch g.Locate(c) {
	case OffGrid:
		return fmt.Errorf("%w: %v", ErrOffGrid, c)
	case OffShape:
		return fmt.Errorf("%w: %v", ErrOffShape, c)
	}
	return nil
}

// Neighbors returns the in-bounds neighbors of c in direction order.
func (g Geometry) Neighbors(c Coord) []Coord {
	dirs := g.Directions()
	out := make([]Coord, 0, len(dirs))
	for _, d := range dirs {
		if n := c.add(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Center is the middle cell for hexagons. Square boards have no single
// center cell; the top-left of the four middle cells is returned.
func (g Geometry) Center() Coord {
	if g.shape == Hexagon {
		return Coord{Q: g.side - 1, R: g.side - 1}
	}
	return Coord{Q: g.size/2 - 1, R: g.size/2 - 1}
}

// ToCube converts an array coordinate to a centered cube coordinate.
func (g Geometry) ToCube(c Coord) Cube {
	ctr := g.Center()
	q, r := c.Q-ctr.Q, c.R-ctr.R
	return Cube{Q: q, R: r, S: -q - r}
}

// FromCube is the inverse of ToCube. It ignores S.
func (g Geometry) FromCube(cube Cube) Coord {
	ctr := g.Center()
	return Coord{Q: cube.Q + ctr.Q, R: cube.R + ctr.R}
}

// Cells lists every playable coordinate in scan order: rows top to bottom,
// columns left to right within a row.
func (g Geometry) Cells() []Coord {
	out := make([]Coord, 0, g.size*g.size)
	for r := 0; r < g.size; r++ {
		for q := 0; q < g.size; q++ {
			if c := C(q, r); g.InBounds(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Corners returns the corner cells in scan order.
func (g Geometry) Corners() []Coord {
	last := g.size - 1
	if g.shape == Square {
		return []Coord{{0, 0}, {last, 0}, {0, last}, {last, last}}
	}
	h := g.side - 1
	out := make([]Coord, 0, 6)
	for _, r := range []int{0, h, last} {
		for _, q := range []int{0, h, last} {
			if q != r {
				out = append(out, C(q, r))
			}
		}
	}
	return out
}

func (g Geometry) IsCorner(c Coord) bool {
	for _, k := range g.Corners() {
		if k == c {
			return true
		}
	}
	return false
}

// IsCornerAdjacent reports whether c neighbors a corner without being one.
func (g Geometry) IsCornerAdjacent(c Coord) bool {
	if !g.InBounds(c) || g.IsCorner(c) {
		return false
	}
	for _, k := range g.Corners() {
		for _, n := range g.Neighbors(k) {
			if n == c {
				return true
			}
		}
	}
	return false
}

// CellCount is the number of playable cells.
func (g Geometry) CellCount() int {
	if g.shape == Square {
		return g.size * g.size
	}
	return 3*g.side*(g.side-1) + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
