package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-reversi/internal/domain"
	"github.com/jaminalder/codex-reversi/internal/strategy"
)

// Errors exposed by the service layer.
var (
	ErrNotFound      = errors.New("match not found")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotHuman      = errors.New("seat is played by the computer")
	ErrAwaitingHuman = errors.New("waiting for a human move")
	ErrUnknownSeat   = errors.New("unknown seat kind")
)

// Human is the seat kind for a player whose moves arrive through Play/Pass.
const Human = "human"

// MatchConfig describes a new match. Black and White are seat kinds:
// Human or a strategy preset name.
type MatchConfig struct {
	Shape   domain.Shape
	Size    int
	Black   string
	White   string
	Workers int
}

// MatchState is a snapshot of a match, safe to keep after the call.
type MatchState struct {
	ID        string
	Board     *domain.Board
	Turn      domain.Color // zero once the game is over
	Status    domain.Status
	Winner    domain.Color // zero while tied
	Black     int
	White     int
	Passes    int
	Moves     int
	BlackSeat string
	WhiteSeat string
	Created   time.Time
	Updated   time.Time
}

// Over reports whether the match has finished.
func (s MatchState) Over() bool { return s.Status == domain.Over }

// Update pairs a game event with the match state after the operation that
// produced it.
type Update struct {
	Event domain.Event
	State MatchState
}

type seat struct {
	kind     string
	strategy strategy.Strategy
}

func (s seat) human() bool { return s.strategy == nil }

type match struct {
	id      string
	game    *domain.Game
	black   seat
	white   seat
	created time.Time
	updated time.Time
	pending []domain.Event
}

func (m *match) seat(c domain.Color) seat {
	if c == domain.White {
		return m.white
	}
	return m.black
}

func (m *match) state() MatchState {
	st := MatchState{
		ID:        m.id,
		Board:     m.game.Snapshot(),
		Status:    m.game.Status(),
		Black:     m.game.Score(domain.Black),
		White:     m.game.Score(domain.White),
		Passes:    m.game.Passes(),
		Moves:     m.game.Moves(),
		BlackSeat: m.black.kind,
		WhiteSeat: m.white.kind,
		Created:   m.created,
		Updated:   m.updated,
	}
	if turn, err := m.game.CurrentPlayer(); err == nil {
		st.Turn = turn
	}
	if w, ok := m.game.Winner(); ok {
		st.Winner = w
	}
	return st
}

func (m *match) drain() []domain.Event {
	evs := m.pending
	m.pending = nil
	return evs
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan Update
	closed bool
}

// send delivers u without blocking; false means the subscriber is full or gone.
func (s *subscriber) send(u Update) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- u:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// Service manages matches and subscribers.
type Service struct {
	mu      sync.Mutex
	matches map[string]*match
	subs    map[string]map[*subscriber]struct{}
	log     zerolog.Logger
	buffer  int
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for match activity.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithBuffer sets the per-subscriber channel capacity.
func WithBuffer(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.buffer = n
		}
	}
}

// NewService creates a service. Without options it logs nowhere.
func NewService(opts ...Option) *Service {
	s := &Service{
		matches: make(map[string]*match),
		subs:    make(map[string]map[*subscriber]struct{}),
		log:     zerolog.Nop(),
		buffer:  16,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newSeat(kind string, workers int) (seat, error) {
	if kind == Human {
		return seat{kind: Human}, nil
	}
	st, err := strategy.ByName(kind, workers)
	if err != nil {
		return seat{}, fmt.Errorf("%w: %w", ErrUnknownSeat, err)
	}
	return seat{kind: kind, strategy: st}, nil
}

// CreateMatch creates and registers a new match and announces its start.
func (s *Service) CreateMatch(cfg MatchConfig) (*MatchState, error) {
	geo, err := domain.NewGeometry(cfg.Shape, cfg.Size)
	if err != nil {
		return nil, err
	}
	black, err := newSeat(cfg.Black, cfg.Workers)
	if err != nil {
		return nil, err
	}
	white, err := newSeat(cfg.White, cfg.Workers)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	m := &match{
		id:      newMatchID(),
		game:    domain.New(geo),
		black:   black,
		white:   white,
		created: now,
		updated: now,
	}
	log := s.log.With().Str("match", m.id).Logger()
	m.game.Observe(func(ev domain.Event) {
		m.pending = append(m.pending, ev)
		logEvent(log, ev)
	})
	s.matches[m.id] = m
	log.Info().
		Str("shape", geo.Shape().String()).
		Int("size", geo.Side()).
		Str("black", black.kind).
		Str("white", white.kind).
		Msg("match created")
	m.game.Start()
	// nobody can be subscribed yet
	m.drain()
	st := m.state()
	return &st, nil
}

// Get returns a snapshot of the match if present.
func (s *Service) Get(id string) (*MatchState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, false
	}
	st := m.state()
	return &st, true
}

// Play places a disc for a human seat.
func (s *Service) Play(id string, color domain.Color, c domain.Coord) (*MatchState, error) {
	return s.humanMove(id, color, domain.Place(c))
}

// Pass gives up a human seat's turn.
func (s *Service) Pass(id string, color domain.Color) (*MatchState, error) {
	return s.humanMove(id, color, domain.PassMove())
}

func (s *Service) humanMove(id string, color domain.Color, mv domain.Move) (*MatchState, error) {
	return s.apply(id, func(m *match) error {
		turn, err := m.game.CurrentPlayer()
		if err != nil {
			return err
		}
		if !m.seat(color).human() {
			return ErrNotHuman
		}
		if color != turn {
			return ErrNotYourTurn
		}
		return m.game.Submit(mv)
	})
}

// Step lets the computer seat to move pick and play its move, passing
// when its strategy selects nothing.
func (s *Service) Step(id string) (*MatchState, error) {
	return s.apply(id, func(m *match) error {
		turn, err := m.game.CurrentPlayer()
		if err != nil {
			return err
		}
		st := m.seat(turn)
		if st.human() {
			return ErrAwaitingHuman
		}
		c, ok := strategy.Select(st.strategy, m.game.Snapshot(), turn)
		if !ok {
			return m.game.Pass()
		}
		if err := m.game.Play(c); err != nil {
			return fmt.Errorf("%s strategy chose %v: %w", st.kind, c, err)
		}
		return nil
	})
}

// Run steps computer seats until the game ends, a human has to move, or
// ctx is done. Reaching a human seat returns ErrAwaitingHuman with the
// current state.
func (s *Service) Run(ctx context.Context, id string) (*MatchState, error) {
	for {
		if err := ctx.Err(); err != nil {
			st, _ := s.Get(id)
			return st, err
		}
		st, err := s.Step(id)
		switch {
		case errors.Is(err, domain.ErrGameOver):
			st, _ = s.Get(id)
			return st, nil
		case errors.Is(err, ErrAwaitingHuman):
			st, _ = s.Get(id)
			return st, err
		case err != nil:
			return nil, err
		}
		if st.Over() {
			return st, nil
		}
	}
}

// apply runs op under the lock, then fans out the events it produced.
func (s *Service) apply(id string, op func(*match) error) (*MatchState, error) {
	var toDrop []*subscriber

	s.mu.Lock()
	m, ok := s.matches[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if err := op(m); err != nil {
		m.drain()
		s.mu.Unlock()
		return nil, err
	}
	m.updated = s.now()

	// Snapshot state and subscribers
	st := m.state()
	evs := m.drain()
	subs := s.copySubsLocked(id)
	s.mu.Unlock()

	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		for _, ev := range evs {
			if !sub.send(Update{Event: ev, State: st}) {
				sub.close()
				toDrop = append(toDrop, sub)
				break
			}
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
		s.log.Debug().Str("match", id).Int("dropped", len(toDrop)).Msg("dropped slow subscribers")
	}
	return &st, nil
}

// Subscribe registers a subscriber for a match. The channel closes when ctx
// ends, when unsubscribe is called, or when the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan Update, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan Update, s.buffer)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}

func logEvent(log zerolog.Logger, ev domain.Event) {
	switch ev.Kind {
	case domain.GameStarted:
		log.Info().Str("next", ev.Next.String()).Msg("game started")
	case domain.TurnChanged:
		log.Info().
			Str("mover", ev.Mover.String()).
			Str("move", ev.Move.String()).
			Int("flipped", ev.Flipped).
			Int("black", ev.Black).
			Int("white", ev.White).
			Msg("turn changed")
	case domain.GameOver:
		log.Info().
			Str("winner", ev.Winner.String()).
			Int("black", ev.Black).
			Int("white", ev.White).
			Msg("game over")
	}
}
