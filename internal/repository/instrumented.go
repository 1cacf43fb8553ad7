package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jaekwang-park/reminder-api/internal/metrics"
	"github.com/jaekwang-park/reminder-api/internal/model"
)

type instrumentedRepository struct {
	next     ReminderRepository
	observer metrics.StoreObserver
}

// Instrument reports the latency and outcome of every call on repo to
// observer. A missing record is not counted as a failure.
func Instrument(repo ReminderRepository, observer metrics.StoreObserver) ReminderRepository {
	if observer == nil {
		observer = metrics.NopObserver{}
	}
	return &instrumentedRepository{next: repo, observer: observer}
}

func (r *instrumentedRepository) Create(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	start := time.Now()
	created, err := r.next.Create(ctx, reminder)
	r.record("create", start, err)
	return created, err
}

func (r *instrumentedRepository) List(ctx context.Context) ([]model.Reminder, error) {
	start := time.Now()
	reminders, err := r.next.List(ctx)
	r.record("list", start, err)
	return reminders, err
}

func (r *instrumentedRepository) SetDone(ctx context.Context, id string, done bool) error {
	start := time.Now()
	err := r.next.SetDone(ctx, id, done)
	r.record("set_done", start, err)
	return err
}

func (r *instrumentedRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := r.next.Delete(ctx, id)
	r.record("delete", start, err)
	return err
}

func (r *instrumentedRepository) record(op string, start time.Time, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	r.observer.RecordOperation(op, time.Since(start), err)
}
