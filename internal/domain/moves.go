package domain

import "fmt"

// Line is a run of opponent discs that a move would flip, nearest first.
type Line []Coord

// CaptureLines returns every line that a disc of color mover placed at
// target would sandwich. The target's own contents are not inspected.
func CaptureLines(b BoardView, target Coord, mover Color) []Line {
	geo := b.Geometry()
	if !geo.InBounds(target) {
		return nil
	}
	opp := Disc(mover.Opponent())
	var lines []Line
	for _, d := range geo.Directions() {
		var ln Line
		cur := target.add(d)
		for {
			cell, err := b.CellAt(cur)
			if err != nil || cell.IsEmpty() {
				// ran off the board or hit a gap: no sandwich
				ln = nil
				break
			}
			if cell != opp {
				break
			}
			ln = append(ln, cur)
			cur = cur.add(d)
		}
		if len(ln) > 0 {
			lines = append(lines, ln)
		}
	}
	return lines
}

// IsLegal reports whether mover may place a disc at target.
func IsLegal(b BoardView, target Coord, mover Color) bool {
	cell, err := b.CellAt(target)
	if err != nil || !cell.IsEmpty() {
		return false
	}
	return len(CaptureLines(b, target, mover)) > 0
}

// CaptureCount is the number of discs a move at target would flip, or 0
// when the move is illegal. The board is only read.
func CaptureCount(b BoardView, target Coord, mover Color) int {
	if !IsLegal(b, target, mover) {
		return 0
	}
	n := 0
	for _, ln := range CaptureLines(b, target, mover) {
		n += len(ln)
	}
	return n
}

// LegalMoves lists mover's legal targets in scan order.
func LegalMoves(b BoardView, mover Color) []Coord {
	var out []Coord
	for _, c := range b.Geometry().Cells() {
		if IsLegal(b, c, mover) {
			out = append(out, c)
		}
	}
	return out
}

func HasLegalMove(b BoardView, mover Color) bool {
	for _, c := range b.Geometry().Cells() {
		if IsLegal(b, c, mover) {
			return true
		}
	}
	return false
}

// Apply places mover's disc at target and flips every captured line.
// It returns the number of flipped discs. Nothing is mutated on error.
func Apply(b *Board, target Coord, mover Color) (int, error) {
	if !mover.Valid() {
		return 0, fmt.Errorf("%w: invalid color %d", ErrIllegalMove, mover)
	}
	cell, err := b.CellAt(target)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	if !cell.IsEmpty() {
		return 0, fmt.Errorf("%w: %w: %v", ErrIllegalMove, ErrOccupiedCell, target)
	}
	lines := CaptureLines(b, target, mover)
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: %v captures nothing for %v", ErrIllegalMove, target, mover)
	}

	if err := b.Place(target, mover); err != nil {
		return 0, err
	}
	flipped := 0
	for _, ln := range lines {
		for _, c := range ln {
			if err := b.Flip(c); err != nil {
				return flipped, err
			}
			flipped++
		}
	}
	return flipped, nil
}
