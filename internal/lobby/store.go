// Package lobby keeps the SQLite record of hosted games: who joined, how
// they ended, and which were touched most recently.
package lobby

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Scrimzay/plunderpunk/internal/lobby/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const (
	DefaultMaxPlayers = 2
	DefaultRecent     = 5

	createAttempts = 5
)

var (
	ErrNotFound     = errors.New("game not found")
	ErrGameFull     = errors.New("game is full")
	ErrGameFinished = errors.New("game is finished")
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Game is one lobby record.
type Game struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
	Players      []string  `json:"players"`
	Status       Status    `json:"status"`
	Layout       string    `json:"layout"`
	Seed         int64     `json:"seed"`
	Winner       string    `json:"winner,omitempty"`
	MaxPlayers   int       `json:"maxPlayers"`
}

// Store persists lobby state in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite lobby store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create opens a new game hosted by host under a fresh code. maxPlayers caps
// the seats, DefaultMaxPlayers when not positive.
func (s *Store) Create(ctx context.Context, host, layout string, seed int64, maxPlayers int) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Game{}, fmt.Errorf("storage is not configured")
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return Game{}, fmt.Errorf("host name is required")
	}
	if layout == "" {
		layout = "classic"
	}
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		id, err := NewCode()
		if err != nil {
			return Game{}, err
		}
		err = s.insertGame(ctx, id, host, layout, seed, maxPlayers)
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return Game{}, fmt.Errorf("create game: %w", err)
		}
		return s.Get(ctx, id)
	}
	return Game{}, fmt.Errorf("create game: no free code after %d attempts", createAttempts)
}

func (s *Store) insertGame(ctx context.Context, id, host, layout string, seed int64, maxPlayers int) error {
	now := toMillis(s.now())
	status := StatusWaiting
	if maxPlayers <= 1 {
		status = StatusPlaying
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO games (id, created_at, last_accessed, status, layout, seed, max_players) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, now, now, string(status), layout, seed, maxPlayers,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO game_players (game_id, seat, name) VALUES (?, 0, ?)`, id, host,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Join seats name in the game, up to the game's MaxPlayers captains.
func (s *Store) Join(ctx context.Context, id, name string) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Game{}, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Game{}, fmt.Errorf("player name is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return Game{}, fmt.Errorf("join game: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		status     string
		maxPlayers int
	)
	err = tx.QueryRowContext(ctx,
		`SELECT status, max_players FROM games WHERE id = ?`, id,
	).Scan(&status, &maxPlayers)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, ErrNotFound
	}
	if err != nil {
		return Game{}, fmt.Errorf("join game: %w", err)
	}
	if Status(status) == StatusFinished {
		return Game{}, ErrGameFinished
	}

	var seats, nextSeat int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(MAX(seat), -1) + 1 FROM game_players WHERE game_id = ?`, id,
	).Scan(&seats, &nextSeat); err != nil {
		return Game{}, fmt.Errorf("join game: %w", err)
	}
	if seats >= maxPlayers {
		return Game{}, ErrGameFull
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO game_players (game_id, seat, name) VALUES (?, ?, ?)`, id, nextSeat, name,
	); err != nil {
		return Game{}, fmt.Errorf("join game: %w", err)
	}
	next := StatusWaiting
	if seats+1 >= maxPlayers {
		next = StatusPlaying
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET status = ?, last_accessed = ? WHERE id = ?`,
		string(next), toMillis(s.now()), id,
	); err != nil {
		return Game{}, fmt.Errorf("join game: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Game{}, fmt.Errorf("join game: %w", err)
	}
	return s.read(ctx, id)
}

// Get returns one game and marks it as accessed.
func (s *Store) Get(ctx context.Context, id string) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Game{}, fmt.Errorf("storage is not configured")
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE games SET last_accessed = ? WHERE id = ?`, toMillis(s.now()), id,
	)
	if err != nil {
		return Game{}, fmt.Errorf("touch game: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Game{}, ErrNotFound
	}
	return s.read(ctx, id)
}

func (s *Store) read(ctx context.Context, id string) (Game, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, created_at, last_accessed, status, layout, seed, winner, max_players FROM games WHERE id = ?`, id,
	)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, ErrNotFound
	}
	if err != nil {
		return Game{}, fmt.Errorf("get game: %w", err)
	}
	if g.Players, err = s.players(ctx, id); err != nil {
		return Game{}, err
	}
	return g, nil
}

// Recent lists the most recently accessed games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = DefaultRecent
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, created_at, last_accessed, status, layout, seed, winner, max_players
		   FROM games
		  ORDER BY last_accessed DESC, id
		  LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent games: %w", err)
	}

	for i := range games {
		if games[i].Players, err = s.players(ctx, games[i].ID); err != nil {
			return nil, err
		}
	}
	return games, nil
}

// Finish closes the game. winner is empty when nobody won.
func (s *Store) Finish(ctx context.Context, id, winner string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE games SET status = ?, winner = ?, last_accessed = ? WHERE id = ?`,
		string(StatusFinished), winner, toMillis(s.now()), id,
	)
	if err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Leave gives up the last seat name holds, undoing a Join.
func (s *Store) Leave(ctx context.Context, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("leave game: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM game_players
		  WHERE game_id = ?
		    AND seat = (SELECT MAX(seat) FROM game_players WHERE game_id = ? AND name = ?)`,
		id, id, strings.TrimSpace(name),
	)
	if err != nil {
		return fmt.Errorf("leave game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("leave game: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET status = ?, last_accessed = ? WHERE id = ? AND status = ?`,
		string(StatusWaiting), toMillis(s.now()), id, string(StatusPlaying),
	); err != nil {
		return fmt.Errorf("leave game: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("leave game: %w", err)
	}
	return nil
}

// Reopen records a restart: the game is dealt again under seed, the winner is
// cleared, and the status follows the seats taken.
func (s *Store) Reopen(ctx context.Context, id string, seed int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE games
		    SET seed = ?,
		        winner = '',
		        last_accessed = ?,
		        status = CASE
		            WHEN (SELECT COUNT(1) FROM game_players WHERE game_id = games.id) >= max_players THEN ?
		            ELSE ?
		        END
		  WHERE id = ?`,
		seed, toMillis(s.now()), string(StatusPlaying), string(StatusWaiting), id,
	)
	if err != nil {
		return fmt.Errorf("reopen game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reopen game: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) players(ctx context.Context, id string) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name FROM game_players WHERE game_id = ? ORDER BY seat`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (Game, error) {
	var (
		g            Game
		status       string
		createdAt    int64
		lastAccessed int64
	)
	if err := row.Scan(&g.ID, &createdAt, &lastAccessed, &status, &g.Layout, &g.Seed, &g.Winner, &g.MaxPlayers); err != nil {
		return Game{}, err
	}
	g.Status = Status(status)
	g.CreatedAt = fromMillis(createdAt)
	g.LastAccessed = fromMillis(lastAccessed)
	return g, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
