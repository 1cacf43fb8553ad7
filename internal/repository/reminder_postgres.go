package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jaekwang-park/reminder-api/internal/model"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS reminders (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title      TEXT NOT NULL CHECK (title <> ''),
		due_at     TIMESTAMPTZ NOT NULL,
		done       BOOLEAN NOT NULL DEFAULT false,
		user_id    TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	);
	CREATE INDEX IF NOT EXISTS idx_reminders_due_at ON reminders (due_at, created_at);`

type PostgresReminderRepository struct {
	db *sql.DB
}

func NewPostgresReminder(db *sql.DB) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

// Migrate creates the reminders table when it does not exist yet.
func (r *PostgresReminderRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to migrate reminders: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) Create(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	query := `
		INSERT INTO reminders (title, due_at, done, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, due_at, done, user_id, created_at`

	row := r.db.QueryRowContext(ctx, query,
		reminder.Title, reminder.DueAt, reminder.Done, reminder.UserID,
	)

	return scanReminder(row)
}

func (r *PostgresReminderRepository) List(ctx context.Context) ([]model.Reminder, error) {
	query := `
		SELECT id, title, due_at, done, user_id, created_at
		FROM reminders
		ORDER BY due_at ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

func (r *PostgresReminderRepository) SetDone(ctx context.Context, id string, done bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return sql.ErrNoRows
	}

	result, err := r.db.ExecContext(ctx, `UPDATE reminders SET done = $1 WHERE id = $2`, done, id)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return expectAffected(result)
}

func (r *PostgresReminderRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return sql.ErrNoRows
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanReminder(row scannable) (model.Reminder, error) {
	var rem model.Reminder
	var userID sql.NullString
	err := row.Scan(&rem.ID, &rem.Title, &rem.DueAt, &rem.Done, &userID, &rem.CreatedAt)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("failed to scan reminder: %w", err)
	}
	if userID.Valid {
		rem.UserID = &userID.String
	}
	return rem, nil
}

func collectReminders(rows *sql.Rows) ([]model.Reminder, error) {
	reminders := []model.Reminder{}
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return reminders, nil
}

// ensure compile-time interface compliance
var _ ReminderRepository = (*PostgresReminderRepository)(nil)
