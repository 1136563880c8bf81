package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Scrimzay/plunderpunk/internal/board"
	"github.com/Scrimzay/plunderpunk/internal/lobby"
	"github.com/Scrimzay/plunderpunk/internal/profile"
	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	recordTimeout  = 5 * time.Second
	DefaultIdleTTL = 30 * time.Minute
)

// finishedGrace is how long a finished game lingers for its watchers.
const finishedGrace = 2 * time.Minute

// Lobby is the persistent game list. *lobby.Store satisfies it.
type Lobby interface {
	Create(ctx context.Context, host, layout string, seed int64, maxPlayers int) (lobby.Game, error)
	Join(ctx context.Context, id, name string) (lobby.Game, error)
	Leave(ctx context.Context, id, name string) error
	Get(ctx context.Context, id string) (lobby.Game, error)
	Recent(ctx context.Context, limit int) ([]lobby.Game, error)
	Finish(ctx context.Context, id, winner string) error
	Reopen(ctx context.Context, id string, seed int64) error
}

// Profiles is the captains' career store. *profile.Store satisfies it.
type Profiles interface {
	Load(name string) (profile.PlayerData, error)
	Record(name string, r profile.Result) (profile.PlayerData, error)
}

// Registry owns every live session of the server. Sessions nobody watches
// are dropped by Sweep and dealt again from the lobby on the next lookup.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	lobby    Lobby
	profiles Profiles
	rules    board.Rules
	interval time.Duration
	idleTTL  time.Duration
	now      func() time.Time
	log      *logrus.Entry
}

func NewRegistry(l Lobby, p Profiles, rules board.Rules, interval time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		lobby:    l,
		profiles: p,
		rules:    rules,
		interval: interval,
		idleTTL:  DefaultIdleTTL,
		now:      time.Now,
		log:      logger.Component("registry"),
	}
}

// SetIdleTTL sets how long an unwatched, unfinished game stays in memory.
func (r *Registry) SetIdleTTL(ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	r.mu.Lock()
	r.idleTTL = ttl
	r.mu.Unlock()
}

// Create opens a lobby record and deals a board for its host on the named layout.
func (r *Registry) Create(ctx context.Context, host, layout string) (*Session, error) {
	rules, err := r.rules.WithLayout(layout)
	if err != nil {
		return nil, err
	}
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	record, err := r.lobby.Create(ctx, host, layout, seed, rules.MaxPlayers)
	if err != nil {
		return nil, fmt.Errorf("create lobby game: %w", err)
	}
	game, err := board.New(rules, seed, []string{record.Players[0]})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	s := r.track(record.ID, game)
	r.log.WithFields(logrus.Fields{
		"game":   record.ID,
		"host":   host,
		"layout": record.Layout,
		"seed":   seed,
	}).Info("Game created")
	return s, nil
}

// Join seats name in game id. A captain already seated just gets their seat back.
// The lobby seat is given up again when the board refuses the captain.
func (r *Registry) Join(ctx context.Context, id, name string) (*Session, board.Player, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return nil, board.Player{}, err
	}

	s.lobbyMu.Lock()
	defer s.lobbyMu.Unlock()

	if pid, err := s.PlayerID(name); err == nil {
		for _, p := range s.game.Players() {
			if p.ID == pid {
				return s, p, nil
			}
		}
	}

	if _, err := r.lobby.Join(ctx, id, name); err != nil {
		return nil, board.Player{}, err
	}
	p, err := s.game.AddPlayer(name)
	if err != nil {
		if leaveErr := r.lobby.Leave(ctx, id, name); leaveErr != nil {
			r.log.WithError(leaveErr).WithFields(logrus.Fields{"game": id, "player": name}).Error("Failed to give up lobby seat")
		}
		return nil, board.Player{}, err
	}
	s.seat(p.Name, p.ID)
	s.changed()

	r.log.WithFields(logrus.Fields{"game": id, "player": name}).Info("Player joined")
	return s, p, nil
}

// Get returns the live session. Games known to the lobby but not in memory,
// after a restart of the server or an eviction, are dealt again from their seed.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.touch()
		return s, nil
	}

	record, err := r.lobby.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status == lobby.StatusFinished {
		return nil, lobby.ErrGameFinished
	}
	rules, err := r.rules.WithLayout(record.Layout)
	if err != nil {
		return nil, err
	}
	game, err := board.New(rules, record.Seed, record.Players)
	if err != nil {
		return nil, fmt.Errorf("rebuild board: %w", err)
	}

	r.log.WithField("game", id).Info("Game restored from lobby")
	return r.track(id, game), nil
}

func (r *Registry) track(id string, game *board.Game) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := newSession(id, game, r.interval, hooks{
		finished:  r.record,
		restarted: r.reopen,
		now:       r.now,
	}, r.log)
	r.sessions[id] = s
	return s
}

func (r *Registry) Recent(ctx context.Context, limit int) ([]lobby.Game, error) {
	return r.lobby.Recent(ctx, limit)
}

func (r *Registry) Profile(name string) (profile.PlayerData, error) {
	return r.profiles.Load(name)
}

// record closes the lobby entry and folds every captain's game into their profile.
func (r *Registry) record(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	snap := s.game.Snapshot()
	winner := ""
	for _, p := range snap.Players {
		if p.ID == snap.Winner {
			winner = p.Name
		}
	}

	log := r.log.WithFields(logrus.Fields{
		"game":   s.ID,
		"state":  snap.State,
		"winner": winner,
	})
	if err := r.lobby.Finish(ctx, s.ID, winner); err != nil {
		log.WithError(err).Error("Failed to finish lobby game")
	}
	for _, p := range snap.Players {
		result := profile.Result{
			Points:          p.Points,
			BattlesWon:      p.BattlesWon,
			IslandsCaptured: p.IslandsCaptured,
			Won:             p.ID == snap.Winner,
		}
		if _, err := r.profiles.Record(p.Name, result); err != nil {
			log.WithError(err).WithField("player", p.Name).Error("Failed to record profile")
		}
	}
	log.Info("Game finished")
}

func (r *Registry) reopen(s *Session, seed int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	return r.lobby.Reopen(ctx, s.ID, seed)
}

// Sweep drops sessions without watchers that have been quiet too long:
// finished games after a short grace, the rest after the idle TTL. It
// returns how many were dropped.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if s.broadcaster.Clients() > 0 {
			continue
		}
		ttl := r.idleTTL
		if s.game.State().Finished() {
			ttl = finishedGrace
		}
		if now.Sub(s.LastActive()) < ttl {
			continue
		}
		delete(r.sessions, id)
		idle = append(idle, s)
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
		r.log.WithFields(logrus.Fields{"game": s.ID, "state": s.game.State()}).Info("Session evicted")
	}
	return len(idle)
}

// Janitor sweeps every period until ctx is done.
func (r *Registry) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sessions is the number of games held in memory.
func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops every broadcaster.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
	}
}
