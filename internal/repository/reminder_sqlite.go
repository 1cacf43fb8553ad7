package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jaekwang-park/reminder-api/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS reminders (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL CHECK (title <> ''),
		due_at     DATETIME NOT NULL,
		done       BOOLEAN NOT NULL DEFAULT 0,
		user_id    TEXT,
		created_at DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
	);
	CREATE INDEX IF NOT EXISTS idx_reminders_due_at ON reminders (due_at)`

// SQLiteReminderRepository keeps reminders in a local SQLite file. Due times
// are stored in UTC.
type SQLiteReminderRepository struct {
	db *sql.DB
}

// NewSQLiteReminder opens (or creates) the database at path and applies the
// schema. Use ":memory:" for a throwaway store.
func NewSQLiteReminder(path string) (*SQLiteReminderRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writes
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &SQLiteReminderRepository{db: db}, nil
}

func (r *SQLiteReminderRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteReminderRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteReminderRepository) Create(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	id := uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (id, title, due_at, done, user_id) VALUES (?, ?, ?, ?, ?)`,
		id, reminder.Title, reminder.DueAt.UTC(), reminder.Done, reminder.UserID,
	)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("failed to insert reminder: %w", err)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, due_at, done, user_id, created_at FROM reminders WHERE id = ?`, id)
	return scanReminder(row)
}

func (r *SQLiteReminderRepository) List(ctx context.Context) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, due_at, done, user_id, created_at
		FROM reminders
		ORDER BY julianday(due_at) ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

func (r *SQLiteReminderRepository) SetDone(ctx context.Context, id string, done bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE reminders SET done = ? WHERE id = ?`, done, id)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return expectAffected(result)
}

func (r *SQLiteReminderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return expectAffected(result)
}

var _ ReminderRepository = (*SQLiteReminderRepository)(nil)
