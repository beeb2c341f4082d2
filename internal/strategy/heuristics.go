package strategy

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jaminalder/codex-reversi/internal/domain"
)

// MaxCapture keeps the candidates that flip the most discs, in scan order.
// Candidates that flip nothing never survive. With Workers > 1 the scores
// are computed concurrently, each worker on its own snapshot.
type MaxCapture struct {
	Workers int
}

func (m MaxCapture) Choose(b domain.BoardView, mover domain.Color, candidates []domain.Coord) []domain.Coord {
	scores := m.score(b, mover, candidates)
	best := 0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	if best == 0 {
		return nil
	}
	var out []domain.Coord
	for i, c := range candidates {
		if scores[i] == best {
			out = append(out, c)
		}
	}
	sortScan(out)
	return out
}

func (m MaxCapture) score(b domain.BoardView, mover domain.Color, candidates []domain.Coord) []int {
	scores := make([]int, len(candidates))
	workers := m.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers <= 1 {
		for i, c := range candidates {
			scores[i] = domain.CaptureCount(b, c, mover)
		}
		return scores
	}

	var g errgroup.Group
	chunk := (len(candidates) + workers - 1) / workers
	for lo := 0; lo < len(candidates); lo += chunk {
		hi := lo + chunk
		if hi > len(candidates) {
			hi = len(candidates)
		}
		snap := b.Snapshot()
		lo := lo
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				scores[i] = domain.CaptureCount(snap, candidates[i], mover)
			}
			return nil
		})
	}
	_ = g.Wait()
	return scores
}

// PreferCorner keeps legal corner candidates when there are any and
// otherwise returns its input unchanged.
type PreferCorner struct{}

func (PreferCorner) Choose(b domain.BoardView, mover domain.Color, candidates []domain.Coord) []domain.Coord {
	geo := b.Geometry()
	var corners []domain.Coord
	for _, c := range candidates {
		if geo.IsCorner(c) && domain.IsLegal(b, c, mover) {
			corners = append(corners, c)
		}
	}
	if len(corners) == 0 {
		return clone(candidates)
	}
	return corners
}

// AvoidCornerAdjacent moves candidates next to a corner to the end of the
// list, keeping relative order on both sides. Nothing is removed.
type AvoidCornerAdjacent struct{}

func (AvoidCornerAdjacent) Choose(b domain.BoardView, _ domain.Color, candidates []domain.Coord) []domain.Coord {
	geo := b.Geometry()
	out := make([]domain.Coord, 0, len(candidates))
	var risky []domain.Coord
	for _, c := range candidates {
		if geo.IsCornerAdjacent(c) {
			risky = append(risky, c)
			continue
		}
		out = append(out, c)
	}
	return append(out, risky...)
}

// UpperLeftMost reduces its input to the first element.
type UpperLeftMost struct{}

func (UpperLeftMost) Choose(_ domain.BoardView, _ domain.Color, candidates []domain.Coord) []domain.Coord {
	if len(candidates) == 0 {
		return nil
	}
	return []domain.Coord{candidates[0]}
}

// sortScan orders coordinates row by row, then by column.
func sortScan(cs []domain.Coord) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].R != cs[j].R {
			return cs[i].R < cs[j].R
		}
		return cs[i].Q < cs[j].Q
	})
}
