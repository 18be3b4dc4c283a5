// Package storage provides SQLite-based persistence for recorded match-3 sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// SessionEntry is the summary row of one recorded session.
type SessionEntry struct {
	ID             int64
	GameID         string
	Seed           uint64
	Width          int
	Height         int
	Rule           string
	Ticks          uint64
	Exchanges      int
	TilesRemoved   int
	ExchangesKept  int
	Reverted       int
	LongestCascade int
	Replayable     bool
	FinalBoard     string
	CreatedAt      time.Time
}

// Session is a stored session with its full replay journal.
type Session struct {
	SessionEntry
	Recording core.Recording
}

// GameStats contains aggregated statistics for a game variant.
type GameStats struct {
	GameID         string
	Sessions       int
	TilesRemoved   int64
	LongestCascade int
	LastPlayed     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			cell_size REAL NOT NULL,
			kinds TEXT NOT NULL,
			rule TEXT NOT NULL,
			speed REAL NOT NULL,
			layout TEXT NOT NULL DEFAULT '',
			step REAL NOT NULL,
			ticks INTEGER NOT NULL,
			replayable INTEGER NOT NULL,
			tiles_removed INTEGER NOT NULL DEFAULT 0,
			exchanges_kept INTEGER NOT NULL DEFAULT 0,
			exchanges_reverted INTEGER NOT NULL DEFAULT 0,
			longest_cascade INTEGER NOT NULL DEFAULT 0,
			final_board TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);

		CREATE TABLE IF NOT EXISTS exchanges (
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			a_x INTEGER NOT NULL,
			a_y INTEGER NOT NULL,
			b_x INTEGER NOT NULL,
			b_y INTEGER NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session and its exchange journal in one
// transaction. Returns the ID of the inserted session.
func (s *Store) SaveSession(gameID string, rec core.Recording, stats core.Stats, finalBoard string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	cfg := rec.Config
	res, err := tx.Exec(
		`INSERT INTO sessions
		 (game_id, seed, width, height, cell_size, kinds, rule, speed, layout, step, ticks, replayable,
		  tiles_removed, exchanges_kept, exchanges_reverted, longest_cascade, final_board)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		int64(cfg.Seed),
		cfg.Width,
		cfg.Height,
		cfg.CellSize,
		joinKinds(cfg.Kinds),
		cfg.Rule.String(),
		cfg.AnimationSpeed,
		strings.Join(cfg.Layout, "\n"),
		rec.Step,
		int64(rec.Ticks),
		rec.Replayable,
		stats.TilesRemoved,
		stats.ExchangesKept,
		stats.ExchangesReverted,
		stats.LongestCascade,
		finalBoard,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO exchanges (session_id, seq, tick, a_x, a_y, b_x, b_y) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare exchange insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rec.Requests {
		if _, err := stmt.Exec(id, i, int64(r.Tick), r.A.X, r.A.Y, r.B.X, r.B.Y); err != nil {
			return 0, fmt.Errorf("storage: cannot save exchange %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

const sessionColumns = `s.id, s.game_id, s.seed, s.width, s.height, s.rule, s.ticks,
	(SELECT COUNT(*) FROM exchanges e WHERE e.session_id = s.id),
	s.tiles_removed, s.exchanges_kept, s.exchanges_reverted, s.longest_cascade,
	s.replayable, s.final_board, s.created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (SessionEntry, error) {
	var e SessionEntry
	var seed, ticks int64
	var createdAt any
	err := row.Scan(
		&e.ID, &e.GameID, &seed, &e.Width, &e.Height, &e.Rule, &ticks,
		&e.Exchanges,
		&e.TilesRemoved, &e.ExchangesKept, &e.Reverted, &e.LongestCascade,
		&e.Replayable, &e.FinalBoard, &createdAt,
	)
	if err != nil {
		return e, err
	}
	e.Seed = uint64(seed)
	e.Ticks = uint64(ticks)
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// ListSessions retrieves the most recent sessions, newest first.
// An empty gameID lists every variant.
func (s *Store) ListSessions(gameID string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions s
		 WHERE ? = '' OR s.game_id = ?
		 ORDER BY s.id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadSession retrieves a session and its replay journal.
// Returns nil without error if the session does not exist.
func (s *Store) LoadSession(id int64) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`, s.cell_size, s.kinds, s.speed, s.layout, s.step
		 FROM sessions s
		 WHERE s.id = ?`,
		id,
	)

	var (
		sess                  Session
		seed, ticks           int64
		createdAt             any
		cellSize, speed, step float64
		kinds, layout         string
	)
	err := row.Scan(
		&sess.ID, &sess.GameID, &seed, &sess.Width, &sess.Height, &sess.Rule, &ticks,
		&sess.Exchanges,
		&sess.TilesRemoved, &sess.ExchangesKept, &sess.Reverted, &sess.LongestCascade,
		&sess.Replayable, &sess.FinalBoard, &createdAt,
		&cellSize, &kinds, &speed, &layout, &step,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	sess.Seed = uint64(seed)
	sess.Ticks = uint64(ticks)
	sess.CreatedAt = parseTime(createdAt)

	rule, err := core.ParseSelectionRule(sess.Rule)
	if err != nil {
		return nil, fmt.Errorf("storage: session %d: %w", id, err)
	}

	var layoutRows []string
	if layout != "" {
		layoutRows = strings.Split(layout, "\n")
	}

	sess.Recording = core.Recording{
		Config: core.Config{
			Width:          sess.Width,
			Height:         sess.Height,
			CellSize:       cellSize,
			Kinds:          splitKinds(kinds),
			Rule:           rule,
			AnimationSpeed: speed,
			Seed:           sess.Seed,
			Layout:         layoutRows,
		},
		Ticks:      sess.Ticks,
		Step:       step,
		Replayable: sess.Replayable,
	}

	rows, err := s.db.Query(
		`SELECT tick, a_x, a_y, b_x, b_y FROM exchanges WHERE session_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query exchanges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r core.RecordedExchange
		var tick int64
		if err := rows.Scan(&tick, &r.A.X, &r.A.Y, &r.B.X, &r.B.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan exchange: %w", err)
		}
		r.Tick = uint64(tick)
		sess.Recording.Requests = append(sess.Recording.Requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &sess, nil
}

// ClearSessions deletes all sessions for the given game.
func (s *Store) ClearSessions(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`DELETE FROM exchanges WHERE session_id IN (SELECT id FROM sessions WHERE game_id = ?)`,
		gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear exchanges: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return tx.Commit()
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(tiles_removed), 0), COALESCE(MAX(longest_cascade), 0), MAX(created_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Sessions, &stats.TilesRemoved, &stats.LongestCascade, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func joinKinds(kinds []core.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, "\n")
}

func splitKinds(s string) []core.Kind {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	kinds := make([]core.Kind, len(parts))
	for i, p := range parts {
		kinds[i] = core.Kind(p)
	}
	return kinds
}
