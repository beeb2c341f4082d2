// Package strategy implements deterministic move selection for computer
// players. A Strategy narrows or reorders a candidate list; composites
// chain strategies so that earlier links take priority.
package strategy

import (
	"github.com/jaminalder/codex-reversi/internal/domain"
)

// Strategy narrows an ordered candidate list. Implementations must not
// mutate b and must return the same result for the same inputs.
type Strategy interface {
	Choose(b domain.BoardView, mover domain.Color, candidates []domain.Coord) []domain.Coord
}

// Func adapts a plain function to Strategy.
type Func func(b domain.BoardView, mover domain.Color, candidates []domain.Coord) []domain.Coord

func (f Func) Choose(b domain.BoardView, mover domain.Color, candidates []domain.Coord) []domain.Coord {
	return f(b, mover, candidates)
}

// Composite applies First, then hands a non-empty result to Rest. When
// First yields nothing, Rest runs against the original candidates.
type Composite struct {
	First Strategy
	Rest  Strategy
}

func (c Composite) Choose(b domain.BoardView, mover domain.Color, candidates []domain.Coord) []domain.Coord {
	if out := c.First.Choose(b, mover, candidates); len(out) > 0 {
		return c.Rest.Choose(b, mover, out)
	}
	return c.Rest.Choose(b, mover, candidates)
}

// Chain folds strategies right to left into nested composites, so
// Chain(a, b, c) is Composite{a, Composite{b, c}}.
func Chain(ss ...Strategy) Strategy {
	switch len(ss) {
	case 0:
		return Func(func(_ domain.BoardView, _ domain.Color, c []domain.Coord) []domain.Coord {
			return clone(c)
		})
	case 1:
		return ss[0]
	}
	return Composite{First: ss[0], Rest: Chain(ss[1:]...)}
}

// Select runs s over mover's legal moves. ok is false when the player
// has to pass. At most one coordinate is ever returned.
func Select(s Strategy, b domain.BoardView, mover domain.Color) (domain.Coord, bool) {
	legal := domain.LegalMoves(b, mover)
	if len(legal) == 0 {
		return domain.Coord{}, false
	}
	out := s.Choose(b, mover, legal)
	if len(out) == 0 {
		return domain.Coord{}, false
	}
	return out[0], true
}

func clone(c []domain.Coord) []domain.Coord {
	if c == nil {
		return nil
	}
	out := make([]domain.Coord, len(c))
	copy(out, c)
	return out
}
