package domain

// EventKind identifies a game notification.
type EventKind uint8

const (
	GameStarted EventKind = iota
	TurnChanged
	GameOver
)

func (k EventKind) String() string {
	switch k {
	case GameStarted:
		return "game_started"
	case TurnChanged:
		return "turn_changed"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted after an accepted state transition.
type Event struct {
	Kind EventKind
	// Mover and Move describe the action that caused a TurnChanged event.
	Mover   Color
	Move    Move
	Flipped int
	// Next is the player to act; meaningless once the game is over.
	Next   Color
	Black  int
	White  int
	Passes int
	// Winner is zero while tied.
	Winner Color
}

// Listener receives events synchronously. It must not call back into the
// game that emitted the event.
type Listener func(Event)
