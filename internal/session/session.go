// Package session hosts live games: one board, its watchers, and the
// bookkeeping done when a game finishes.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Scrimzay/plunderpunk/internal/board"
	"github.com/sirupsen/logrus"
)

var ErrNotSeated = errors.New("player is not seated in this game")

// StateMessage is the payload pushed to watchers.
type StateMessage struct {
	Action string         `json:"action"`
	GameID string         `json:"gameId"`
	Game   board.Snapshot `json:"game"`
}

// hooks are the calls a session makes back into its registry.
type hooks struct {
	finished  func(*Session)
	restarted func(s *Session, seed int64) error
	now       func() time.Time
}

type Session struct {
	ID          string
	game        *board.Game
	broadcaster *Broadcaster
	hooks       hooks

	// lobbyMu serializes changes that touch both the board and the lobby record.
	lobbyMu sync.Mutex

	mu         sync.Mutex
	seats      map[string]int // name -> player id
	recorded   bool
	lastActive time.Time

	log *logrus.Entry
}

func newSession(id string, game *board.Game, interval time.Duration, h hooks, log *logrus.Entry) *Session {
	if h.now == nil {
		h.now = time.Now
	}
	s := &Session{
		ID:         id,
		game:       game,
		hooks:      h,
		seats:      make(map[string]int),
		lastActive: h.now(),
		log:        log.WithField("game", id),
	}
	for _, p := range game.Players() {
		s.seats[seatKey(p.Name)] = p.ID
	}
	s.broadcaster = NewBroadcaster(s.State, interval)
	go s.broadcaster.Run()
	return s
}

func seatKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Session) Game() *board.Game {
	return s.game
}

func (s *Session) Broadcaster() *Broadcaster {
	return s.broadcaster
}

// PlayerID resolves a captain's name to their id in this game.
func (s *Session) PlayerID(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.seats[seatKey(name)]
	if !ok {
		return 0, ErrNotSeated
	}
	return id, nil
}

func (s *Session) seat(name string, id int) {
	s.mu.Lock()
	s.seats[seatKey(name)] = id
	s.mu.Unlock()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = s.hooks.now()
	s.mu.Unlock()
}

// LastActive is when the session last saw an action or a lookup.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) Move(name string, x, y int) (board.MoveResult, error) {
	id, err := s.PlayerID(name)
	if err != nil {
		return board.MoveResult{}, err
	}
	res, err := s.game.Move(id, x, y)
	if err != nil {
		return board.MoveResult{}, err
	}
	s.changed()
	return res, nil
}

func (s *Session) Engage(name string, shipID int) (board.CombatResult, error) {
	id, err := s.PlayerID(name)
	if err != nil {
		return board.CombatResult{}, err
	}
	res, err := s.game.Engage(id, shipID)
	if err != nil {
		return board.CombatResult{}, err
	}
	s.changed()
	return res, nil
}

func (s *Session) Pass(name string) error {
	id, err := s.PlayerID(name)
	if err != nil {
		return err
	}
	if err := s.game.Pass(id); err != nil {
		return err
	}
	s.changed()
	return nil
}

func (s *Session) Pause() error {
	if err := s.game.Pause(); err != nil {
		return err
	}
	s.changed()
	return nil
}

func (s *Session) Resume() error {
	if err := s.game.Resume(); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Restart deals a new board under a fresh seed and reopens the lobby record
// with it. The finished game, if any, has already been recorded.
func (s *Session) Restart() error {
	s.lobbyMu.Lock()
	defer s.lobbyMu.Unlock()

	seed, err := NewSeed()
	if err != nil {
		return err
	}
	if s.hooks.restarted != nil {
		if err := s.hooks.restarted(s, seed); err != nil {
			return fmt.Errorf("reopen lobby game: %w", err)
		}
	}
	if err := s.game.Restart(seed); err != nil {
		return err
	}

	s.mu.Lock()
	s.recorded = false
	s.mu.Unlock()

	s.log.WithField("seed", seed).Info("Game restarted")
	s.changed()
	return nil
}

func (s *Session) Inspect(x, y int) (board.CellView, error) {
	return s.game.Inspect(x, y)
}

func (s *Session) Snapshot() board.Snapshot {
	return s.game.Snapshot()
}

// State encodes the current snapshot for watchers.
func (s *Session) State() ([]byte, error) {
	return json.Marshal(StateMessage{
		Action: "state",
		GameID: s.ID,
		Game:   s.game.Snapshot(),
	})
}

// changed pushes the new state and records a finished game exactly once.
func (s *Session) changed() {
	s.touch()
	s.broadcaster.Notify()

	if !s.game.State().Finished() {
		return
	}
	s.mu.Lock()
	first := !s.recorded
	s.recorded = true
	s.mu.Unlock()

	if first && s.hooks.finished != nil {
		s.hooks.finished(s)
	}
}

func (s *Session) Close() {
	s.broadcaster.Close()
}
