package domain

import (
	"errors"
	"testing"
)

// helper to apply a sequence of moves
func playMoves(t *testing.T, g *Game, moves []Move) {
	t.Helper()
	for i, m := range moves {
		if err := g.Submit(m); err != nil {
			t.Fatalf("move %d (%v) failed: %v", i, m, err)
		}
	}
}

func newStandardGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewHex(6)
	if err != nil {
		t.Fatalf("NewHex: %v", err)
	}
	return g
}

func TestNewGameInitialState(t *testing.T) {
	g := newStandardGame(t)
	turn, err := g.CurrentPlayer()
	if err != nil || turn != Black {
		t.Fatalf("expected black to move first, got %v (%v)", turn, err)
	}
	if g.Passes() != 0 {
		t.Fatalf("expected 0 passes, got %d", g.Passes())
	}
	if g.Over() || g.Status() != InProgress {
		t.Fatalf("expected game in progress")
	}
	if g.BoardSize() != 11 {
		t.Fatalf("expected board size 11, got %d", g.BoardSize())
	}
	if g.Score(Black) != 3 || g.Score(White) != 3 {
		t.Fatalf("expected 3-3, got %d-%d", g.Score(Black), g.Score(White))
	}
}

func TestNewHexRejectsSmallSide(t *testing.T) {
	if _, err := NewHex(2); !errors.Is(err, ErrBoardSize) {
		t.Fatalf("expected ErrBoardSize, got %v", err)
	}
}

func TestPlayFlipsAndFlipsTurn(t *testing.T) {
	g := newStandardGame(t)
	if err := g.Play(C(4, 7)); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	for _, c := range []Coord{{4, 7}, {5, 6}, {6, 5}} {
		if cell, _ := g.CellAt(c); cell != Disc(Black) {
			t.Fatalf("expected black at %v, got %v", c, cell)
		}
	}
	if g.Score(Black) != 5 || g.Score(White) != 2 {
		t.Fatalf("expected 5-2, got %d-%d", g.Score(Black), g.Score(White))
	}
	if turn, _ := g.CurrentPlayer(); turn != White {
		t.Fatalf("expected turn to flip to white, got %v", turn)
	}
}

func TestIllegalMoveLeavesStateUnchanged(t *testing.T) {
	g := newStandardGame(t)
	before := g.Snapshot()
	for _, c := range []Coord{{5, 5}, {0, 0}, {6, 5}, {-3, 2}} {
		if err := g.Play(c); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("expected ErrIllegalMove at %v, got %v", c, err)
		}
	}
	if turn, _ := g.CurrentPlayer(); turn != Black {
		t.Fatalf("rejected move changed the turn")
	}
	if g.Score(Black) != 3 || g.Score(White) != 3 || g.Moves() != 0 {
		t.Fatalf("rejected move changed the score")
	}
	for _, c := range before.Geometry().Cells() {
		got, _ := g.CellAt(c)
		was, _ := before.CellAt(c)
		if got != was {
			t.Fatalf("rejected move changed %v", c)
		}
	}
}

func TestPassPassEndsInTie(t *testing.T) {
	g := newStandardGame(t)
	playMoves(t, g, []Move{PassMove(), PassMove()})
	if !g.Over() {
		t.Fatalf("expected game over after two passes")
	}
	if _, ok := g.Winner(); ok {
		t.Fatalf("expected a tie at 3-3")
	}
	if err := g.Play(C(4, 7)); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if err := g.Pass(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if _, err := g.CurrentPlayer(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver from CurrentPlayer, got %v", err)
	}
	if g.LegalMoves() != nil {
		t.Fatalf("no legal moves once over")
	}
}

func TestMoveResetsPassCounter(t *testing.T) {
	g := newStandardGame(t)
	playMoves(t, g, []Move{PassMove()})
	if g.Passes() != 1 {
		t.Fatalf("expected 1 pass, got %d", g.Passes())
	}
	moves := g.LegalMoves()
	if len(moves) == 0 {
		t.Fatalf("white should have a legal move")
	}
	playMoves(t, g, []Move{Place(moves[0])})
	if g.Passes() != 0 {
		t.Fatalf("expected pass counter reset, got %d", g.Passes())
	}
	playMoves(t, g, []Move{PassMove()})
	if g.Over() {
		t.Fatalf("non-consecutive passes must not end the game")
	}
}

func TestFullBoardEndsGame(t *testing.T) {
	geo := mustHex(t, 3)
	b := NewBoard(geo)
	for _, c := range geo.Cells() {
		if c == C(2, 0) {
			continue
		}
		col := White
		if c == C(2, 2) {
			col = Black
		}
		if err := b.Place(c, col); err != nil {
			t.Fatalf("place %v: %v", c, err)
		}
	}
	g := NewFromBoard(b, Black)
	if g.Over() {
		t.Fatalf("one empty cell left, game should be running")
	}
	if err := g.Play(C(2, 0)); err != nil {
		t.Fatalf("final move failed: %v", err)
	}
	if !g.Over() {
		t.Fatalf("expected game over on a full board")
	}
	if w, ok := g.Winner(); !ok || w != White {
		t.Fatalf("expected white to win, got %v (%v)", w, ok)
	}
	if g.Score(Black) != 3 {
		t.Fatalf("expected 3 black discs, got %d", g.Score(Black))
	}
}

func TestNewFromBoardCopiesInput(t *testing.T) {
	b := NewStartBoard(mustHex(t, 4))
	g := NewFromBoard(b, White)
	if err := b.Place(C(3, 3), Black); err != nil {
		t.Fatalf("place: %v", err)
	}
	if cell, _ := g.CellAt(C(3, 3)); !cell.IsEmpty() {
		t.Fatalf("game must not alias the caller's board")
	}
	if turn, _ := g.CurrentPlayer(); turn != White {
		t.Fatalf("expected white first, got %v", turn)
	}
}

func TestEventsFireInOrder(t *testing.T) {
	g := newStandardGame(t)
	var got []Event
	g.Observe(func(ev Event) { got = append(got, ev) })
	g.Start()
	playMoves(t, g, []Move{Place(C(4, 7)), PassMove(), PassMove()})

	kinds := []EventKind{GameStarted, TurnChanged, TurnChanged, TurnChanged, GameOver}
	if len(got) != len(kinds) {
		t.Fatalf("expected %d events, got %d: %+v", len(kinds), len(got), got)
	}
	for i, k := range kinds {
		if got[i].Kind != k {
			t.Fatalf("event %d = %v, want %v", i, got[i].Kind, k)
		}
	}
	if got[1].Mover != Black || got[1].Next != White || got[1].Flipped != 1 || got[1].Black != 5 {
		t.Fatalf("unexpected move event %+v", got[1])
	}
	if !got[3].Move.Pass || got[3].Passes != 2 {
		t.Fatalf("unexpected pass event %+v", got[3])
	}
	if got[4].Winner != Black {
		t.Fatalf("expected black to be ahead at game over, got %v", got[4].Winner)
	}
}

func TestScoreConservation(t *testing.T) {
	g := newStandardGame(t)
	total := g.Geometry().CellCount()
	for i := 0; i < 1000 && !g.Over(); i++ {
		moves := g.LegalMoves()
		var err error
		if len(moves) == 0 {
			err = g.Pass()
		} else {
			// cycle through candidates for some variety
			err = g.Play(moves[i%len(moves)])
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		b := g.Snapshot()
		if g.Score(Black)+g.Score(White)+b.CountEmpty() != total {
			t.Fatalf("step %d: score not conserved", i)
		}
	}
	if !g.Over() {
		t.Fatalf("expected game to finish")
	}
}
