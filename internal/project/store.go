package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"karasub/internal/config"
	"karasub/internal/cue"
	"karasub/internal/style"
	"karasub/internal/words"
)

// ErrLocked is returned when another process holds the store lock.
var ErrLocked = errors.New("project store is locked by another process")

// Store manages project persistence backed by SQLite. One process at a time
// owns the store, guarded by a lock file next to the database.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the project database in the configured
// data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.DataDir, "projects.db"))
}

// OpenPath opens a project database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Create inserts a new empty project and returns it.
func (s *Store) Create(ctx context.Context, title string) (*Project, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, title, timestamp, timestamp)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches a project by ID. A missing project returns nil, nil.
func (s *Store) Get(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, created_at, updated_at FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// List returns every project, most recently updated first.
func (s *Store) List(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, created_at, updated_at FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Delete removes a project and, through cascade, its cues and words.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// SaveCues replaces the project's cue list.
func (s *Store) SaveCues(ctx context.Context, projectID string, cues []cue.Cue) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cues WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("clear cues: %w", err)
		}
		for i, c := range cues {
			var groupID any
			if c.GroupID != nil {
				groupID = *c.GroupID
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cues (project_id, idx, start_sec, end_sec, text, group_id) VALUES (?, ?, ?, ?, ?, ?)`,
				projectID, i, c.Start, c.End, c.Text, groupID)
			if err != nil {
				return fmt.Errorf("insert cue %d: %w", i, err)
			}
		}
		return s.touch(ctx, tx, projectID)
	})
}

// LoadCues returns the project's cue list in stored order.
func (s *Store) LoadCues(ctx context.Context, projectID string) ([]cue.Cue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT start_sec, end_sec, text, group_id FROM cues WHERE project_id = ? ORDER BY idx`, projectID)
	if err != nil {
		return nil, fmt.Errorf("load cues: %w", err)
	}
	defer rows.Close()

	var cues []cue.Cue
	for rows.Next() {
		var c cue.Cue
		var groupID sql.NullInt64
		if err := rows.Scan(&c.Start, &c.End, &c.Text, &groupID); err != nil {
			return nil, fmt.Errorf("scan cue: %w", err)
		}
		if groupID.Valid {
			c.GroupID = &groupID.Int64
		}
		cues = append(cues, c)
	}
	return cues, rows.Err()
}

// SaveWords replaces the project's recognizer word stream.
func (s *Store) SaveWords(ctx context.Context, projectID string, stream []words.Word) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("clear words: %w", err)
		}
		for i, w := range stream {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO words (project_id, idx, token, start_sec, end_sec) VALUES (?, ?, ?, ?, ?)`,
				projectID, i, w.Token, w.Start, w.End)
			if err != nil {
				return fmt.Errorf("insert word %d: %w", i, err)
			}
		}
		return s.touch(ctx, tx, projectID)
	})
}

// LoadWords returns the project's word stream in stored order.
func (s *Store) LoadWords(ctx context.Context, projectID string) ([]words.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT token, start_sec, end_sec FROM words WHERE project_id = ? ORDER BY idx`, projectID)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	var stream []words.Word
	for rows.Next() {
		var w words.Word
		if err := rows.Scan(&w.Token, &w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		stream = append(stream, w)
	}
	return stream, rows.Err()
}

// SaveStyle stores the project's style config.
func (s *Store) SaveStyle(ctx context.Context, projectID string, cfg style.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode style: %w", err)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE projects SET style_json = ? WHERE id = ?`, string(data), projectID); err != nil {
			return fmt.Errorf("save style: %w", err)
		}
		return s.touch(ctx, tx, projectID)
	})
}

// LoadStyle returns the project's style, or the default when none was saved.
func (s *Store) LoadStyle(ctx context.Context, projectID string) (style.Config, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT style_json FROM projects WHERE id = ?`, projectID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return style.Default(), nil
	}
	if err != nil {
		return style.Config{}, fmt.Errorf("load style: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return style.Default(), nil
	}
	var cfg style.Config
	if err := json.Unmarshal([]byte(raw.String), &cfg); err != nil {
		return style.Config{}, fmt.Errorf("decode style: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return style.Config{}, fmt.Errorf("stored style: %w", err)
	}
	return cfg, nil
}

// SaveManualGroups stores the set of manually retimed group IDs.
func (s *Store) SaveManualGroups(ctx context.Context, projectID string, manual cue.GroupSet) error {
	data, err := json.Marshal(manual.IDs())
	if err != nil {
		return fmt.Errorf("encode manual groups: %w", err)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE projects SET manual_groups_json = ? WHERE id = ?`, string(data), projectID); err != nil {
			return fmt.Errorf("save manual groups: %w", err)
		}
		return s.touch(ctx, tx, projectID)
	})
}

// LoadManualGroups returns the stored manual group set, never nil.
func (s *Store) LoadManualGroups(ctx context.Context, projectID string) (cue.GroupSet, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT manual_groups_json FROM projects WHERE id = ?`, projectID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return cue.NewGroupSet(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load manual groups: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return cue.NewGroupSet(nil), nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw.String), &ids); err != nil {
		return nil, fmt.Errorf("decode manual groups: %w", err)
	}
	return cue.NewGroupSet(ids), nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) touch(ctx context.Context, tx *sql.Tx, projectID string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET updated_at = ? WHERE id = ?`, timestamp, projectID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var project Project
	var created, updated string
	if err := row.Scan(&project.ID, &project.Title, &created, &updated); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		project.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		project.UpdatedAt = t
	}
	return &project, nil
}
