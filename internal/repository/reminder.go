package repository

import (
	"context"

	"github.com/jaekwang-park/reminder-api/internal/model"
)

// ReminderRepository is the persistent reminder collection. SetDone and
// Delete return sql.ErrNoRows when no record has the given id.
type ReminderRepository interface {
	Create(ctx context.Context, reminder model.Reminder) (model.Reminder, error)
	List(ctx context.Context) ([]model.Reminder, error)
	SetDone(ctx context.Context, id string, done bool) error
	Delete(ctx context.Context, id string) error
}
