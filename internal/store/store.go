// Package store keeps a local history of analyzed names in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// FileName is the default database file inside the config directory.
const FileName = "history.db"

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("report not found")

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id           TEXT PRIMARY KEY,
	surname      TEXT NOT NULL,
	given_name   TEXT NOT NULL,
	dict_version TEXT NOT NULL,
	payload      TEXT NOT NULL,
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_created_at ON reports(created_at);
`

// Entry is one saved report.
type Entry struct {
	ID          string         `json:"id"`
	Surname     string         `json:"surname"`
	GivenName   string         `json:"givenName"`
	DictVersion string         `json:"dictVersion"`
	Result      *sancai.Result `json:"result"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Store is a report history backed by a SQLite file.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens or creates the database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer at a time; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("History store opened", zap.String("path", path))
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records res and returns the stored entry.
func (s *Store) Save(ctx context.Context, res *sancai.Result) (Entry, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return Entry{}, fmt.Errorf("marshaling result: %w", err)
	}

	e := Entry{
		ID:          uuid.NewString(),
		Surname:     res.Input.Surname,
		GivenName:   res.Input.GivenName,
		DictVersion: res.DictVersion,
		Result:      res,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, surname, given_name, dict_version, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Surname, e.GivenName, e.DictVersion, string(payload), e.CreatedAt.UnixMilli())
	if err != nil {
		return Entry{}, fmt.Errorf("inserting report: %w", err)
	}

	s.logger.Debug("Report saved", zap.String("id", e.ID), zap.String("name", e.Surname+e.GivenName))
	return e, nil
}

// List returns the newest entries first. A non-positive limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, surname, given_name, dict_version, payload, created_at
		FROM reports
		ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, surname, given_name, dict_version, payload, created_at
		FROM reports
		WHERE id = ?
	`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e       Entry
		payload string
		created int64
	)
	if err := sc.Scan(&e.ID, &e.Surname, &e.GivenName, &e.DictVersion, &payload, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning report: %w", err)
	}

	var res sancai.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return Entry{}, fmt.Errorf("parsing report %s: %w", e.ID, err)
	}
	e.Result = &res
	e.CreatedAt = time.UnixMilli(created).UTC()
	return e, nil
}
