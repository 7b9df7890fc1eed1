// Package sqlite exports the reshaped datasets into a SQLite database
// file, one more output artifact alongside the JSON files. Tables are
// recreated on open so the file always reflects exactly one run.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/crimson-sun/restat/internal/model"
)

var migrations = []string{
	`DROP TABLE IF EXISTS users`,
	`CREATE TABLE users (
		user_id      TEXT NOT NULL,
		channel_id   TEXT NOT NULL,
		channel_name TEXT NOT NULL DEFAULT '',
		user_name    TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, channel_id)
	)`,
	`DROP TABLE IF EXISTS message_events`,
	`CREATE TABLE message_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		count      INTEGER NOT NULL,
		timestamp  INTEGER NOT NULL
	)`,
	`DROP TABLE IF EXISTS command_events`,
	`CREATE TABLE command_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		command    TEXT NOT NULL,
		count      INTEGER NOT NULL,
		timestamp  INTEGER NOT NULL
	)`,
	`CREATE INDEX idx_message_events_user ON message_events(user_id, channel_id)`,
	`CREATE INDEX idx_command_events_user ON command_events(user_id, channel_id)`,
	`CREATE INDEX idx_command_events_command ON command_events(command)`,
}

// Sink writes the datasets into a SQLite database file.
type Sink struct {
	db *sql.DB
}

// New opens (or creates) the database at path and recreates the schema.
func New(path string) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite sink: open %s: %w", path, err)
	}
	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite sink: migration %d: %w", i, err)
		}
	}
	return &Sink{db: db}, nil
}

func (s *Sink) WriteUsers(ctx context.Context, users []model.UserEntry) error {
	return s.insert(ctx, "users",
		`INSERT INTO users (user_id, channel_id, channel_name, user_name) VALUES (?, ?, ?, ?)`,
		len(users), func(i int) []any {
			u := users[i]
			return []any{u.UserID, u.ChannelID, u.ChannelName, u.UserName}
		})
}

func (s *Sink) WriteMessages(ctx context.Context, events []model.MessageEvent) error {
	return s.insert(ctx, "message_events",
		`INSERT INTO message_events (user_id, channel_id, count, timestamp) VALUES (?, ?, ?, ?)`,
		len(events), func(i int) []any {
			e := events[i]
			return []any{e.UserID, e.ChannelID, e.Count, e.Timestamp}
		})
}

func (s *Sink) WriteCommands(ctx context.Context, events []model.CommandEvent) error {
	return s.insert(ctx, "command_events",
		`INSERT INTO command_events (user_id, channel_id, command, count, timestamp) VALUES (?, ?, ?, ?, ?)`,
		len(events), func(i int) []any {
			e := events[i]
			return []any{e.UserID, e.ChannelID, e.Command, e.Count, e.Timestamp}
		})
}

// Close closes the underlying database.
func (s *Sink) Close() error {
	return s.db.Close()
}

// insert writes n rows in a single transaction using args to produce the
// bind values for each row.
func (s *Sink) insert(ctx context.Context, table, query string, n int, args func(int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite sink: begin %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite sink: prepare %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite sink: insert %s row %d: %w", table, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite sink: commit %s: %w", table, err)
	}
	return nil
}
