package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jsphweid/ctransposer/model"
	"github.com/jsphweid/ctransposer/util"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	digest            TEXT    NOT NULL,
	semitones         INTEGER NOT NULL,
	name              TEXT    NOT NULL,
	difficulty_before INTEGER NOT NULL,
	difficulty_after  INTEGER NOT NULL,
	chords            INTEGER NOT NULL,
	created_at        TEXT    NOT NULL,
	PRIMARY KEY (digest, semitones)
)`

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := util.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("could not create store directory: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite store: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not create reports table: %w", err)
	}
	return &SQLiteStore{db: conn}, nil
}

func (s *SQLiteStore) SaveReport(ctx context.Context, r model.Report) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports
		(digest, semitones, name, difficulty_before, difficulty_after, chords, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Digest, r.Semitones, r.Name, r.DifficultyBefore, r.DifficultyAfter, r.Chords,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("could not save report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetReports(ctx context.Context, digest string) ([]model.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT digest, semitones, name, difficulty_before, difficulty_after, chords, created_at
		FROM reports WHERE digest = ? ORDER BY semitones`, digest)
	if err != nil {
		return nil, fmt.Errorf("could not query reports: %w", err)
	}
	defer rows.Close()

	var res []model.Report
	for rows.Next() {
		var r model.Report
		var createdAt string
		if err := rows.Scan(&r.Digest, &r.Semitones, &r.Name, &r.DifficultyBefore,
			&r.DifficultyAfter, &r.Chords, &createdAt); err != nil {
			return nil, fmt.Errorf("could not read report: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("bad report timestamp %q: %w", createdAt, err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, ErrNotFound
	}
	return res, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
