package repository

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/reminder-api/internal/model"
)

// MemoryReminderRepository is a process-local store for development and tests.
type MemoryReminderRepository struct {
	mu          sync.Mutex
	reminders   map[string]model.Reminder
	now         func() time.Time
	lastCreated time.Time
}

func NewMemoryReminder() *MemoryReminderRepository {
	return NewMemoryReminderWithClock(time.Now)
}

func NewMemoryReminderWithClock(now func() time.Time) *MemoryReminderRepository {
	return &MemoryReminderRepository{
		reminders: make(map[string]model.Reminder),
		now:       now,
	}
}

func (r *MemoryReminderRepository) Create(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return model.Reminder{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := r.now()
	if created.Before(r.lastCreated) {
		created = r.lastCreated
	}
	r.lastCreated = created

	reminder.ID = uuid.NewString()
	reminder.CreatedAt = created
	r.reminders[reminder.ID] = reminder
	return reminder, nil
}

func (r *MemoryReminderRepository) List(ctx context.Context) ([]model.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	out := make([]model.Reminder, 0, len(r.reminders))
	for _, rem := range r.reminders {
		out = append(out, rem)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryReminderRepository) SetDone(ctx context.Context, id string, done bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rem, ok := r.reminders[id]
	if !ok {
		return sql.ErrNoRows
	}
	rem.Done = done
	r.reminders[id] = rem
	return nil
}

func (r *MemoryReminderRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reminders[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.reminders, id)
	return nil
}

var _ ReminderRepository = (*MemoryReminderRepository)(nil)
