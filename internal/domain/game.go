package domain

import (
	"errors"
	"fmt"
)

// Errors returned by domain operations.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrOffGrid           = fmt.Errorf("%w: outside grid", ErrInvalidCoordinate)
	ErrOffShape          = fmt.Errorf("%w: outside playable shape", ErrInvalidCoordinate)
	ErrOccupiedCell      = errors.New("cell occupied")
	ErrEmptyCell         = errors.New("cell empty")
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameOver          = errors.New("game over")
	ErrBoardSize         = errors.New("invalid board size")
)

// Status is the coarse game state.
type Status uint8

const (
	InProgress Status = iota
	Over
)

func (s Status) String() string {
	if s == Over {
		return "over"
	}
	return "in_progress"
}

// Move is either a placement or a pass.
type Move struct {
	Pass bool
	At   Coord
}

// Place returns the move that puts a disc at c.
func Place(c Coord) Move { return Move{At: c} }

// PassMove returns the pass move.
func PassMove() Move { return Move{Pass: true} }

func (m Move) String() string {
	if m.Pass {
		return "pass"
	}
	return m.At.String()
}

// Game holds the live board and turn state of one match. It is the only
// writer of its board.
type Game struct {
	board     *Board
	turn      Color
	passes    int
	moves     int
	listeners []Listener
}

// New returns a game on geo with the standard opening and Black to move.
func New(geo Geometry) *Game {
	return &Game{board: NewStartBoard(geo), turn: Black}
}

// NewHex returns a standard game on a hexagon with the given side length.
func NewHex(side int) (*Game, error) {
	geo, err := NewHexGeometry(side)
	if err != nil {
		return nil, err
	}
	return New(geo), nil
}

// NewFromBoard starts a game from an arbitrary position. The board is
// copied; later changes to b do not affect the game.
func NewFromBoard(b *Board, first Color) *Game {
	if !first.Valid() {
		first = Black
	}
	return &Game{board: b.Snapshot(), turn: first}
}

// Observe registers a listener for game events.
func (g *Game) Observe(l Listener) {
	if l != nil {
		g.listeners = append(g.listeners, l)
	}
}

// Start announces the game to listeners. A game whose position is already
// terminal also reports GameOver.
func (g *Game) Start() {
	g.emit(g.event(GameStarted))
	if g.Over() {
		g.emit(g.event(GameOver))
	}
}

// Play places the current player's disc at c.
func (g *Game) Play(c Coord) error {
	if g.Over() {
		return ErrGameOver
	}
	mover := g.turn
	flipped, err := Apply(g.board, c, mover)
	if err != nil {
		return err
	}
	g.passes = 0
	g.advance(Place(c), mover, flipped)
	return nil
}

// Pass gives up the current player's turn.
func (g *Game) Pass() error {
	if g.Over() {
		return ErrGameOver
	}
	mover := g.turn
	g.passes++
	g.advance(PassMove(), mover, 0)
	return nil
}

// Submit dispatches m to Play or Pass.
func (g *Game) Submit(m Move) error {
	if m.Pass {
		return g.Pass()
	}
	return g.Play(m.At)
}

func (g *Game) advance(m Move, mover Color, flipped int) {
	g.moves++
	g.turn = mover.Opponent()

	ev := g.event(TurnChanged)
	ev.Mover = mover
	ev.Move = m
	ev.Flipped = flipped
	g.emit(ev)
	if g.Over() {
		g.emit(g.event(GameOver))
	}
}

func (g *Game) event(kind EventKind) Event {
	w, _ := g.Winner()
	return Event{
		Kind:   kind,
		Next:   g.turn,
		Black:  g.board.Score(Black),
		White:  g.board.Score(White),
		Passes: g.passes,
		Winner: w,
	}
}

func (g *Game) emit(ev Event) {
	for _, l := range g.listeners {
		l(ev)
	}
}

// Status derives the game status from the pass counter and the board.
func (g *Game) Status() Status {
	if g.passes >= 2 || g.board.IsFull() {
		return Over
	}
	return InProgress
}

func (g *Game) Over() bool { return g.Status() == Over }

// CurrentPlayer returns the color to act, or ErrGameOver.
func (g *Game) CurrentPlayer() (Color, error) {
	if g.Over() {
		return 0, ErrGameOver
	}
	return g.turn, nil
}

// Winner compares the current scores. ok is false on a tie.
func (g *Game) Winner() (Color, bool) {
	b, w := g.board.Score(Black), g.board.Score(White)
	switch {
	case b > w:
		return Black, true
	case w > b:
		return White, true
	default:
		return 0, false
	}
}

func (g *Game) Score(c Color) int { return g.board.Score(c) }

func (g *Game) CellAt(c Coord) (Cell, error) { return g.board.CellAt(c) }

func (g *Game) BoardSize() int { return g.board.Size() }

func (g *Game) Geometry() Geometry { return g.board.Geometry() }

// Passes is the number of consecutive passes.
func (g *Game) Passes() int { return g.passes }

// Moves counts accepted moves and passes.
func (g *Game) Moves() int { return g.moves }

// LegalMoves lists the current player's legal targets; empty once over.
func (g *Game) LegalMoves() []Coord {
	if g.Over() {
		return nil
	}
	return LegalMoves(g.board, g.turn)
}

// Snapshot returns a copy of the live board.
func (g *Game) Snapshot() *Board { return g.board.Snapshot() }
