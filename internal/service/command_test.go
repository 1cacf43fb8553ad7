package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaekwang-park/reminder-api/internal/model"
	"github.com/jaekwang-park/reminder-api/internal/repository"
	"github.com/jaekwang-park/reminder-api/internal/service"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	svc := newService(repository.NewMemoryReminder())

	out, err := svc.Execute(ctx, service.QuickAddCommand{Text: "Doctor tomorrow 5pm"}, false)
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	if out.Reminder == nil || out.Reminder.Title != "Doctor" {
		t.Fatalf("expected created reminder Doctor, got %+v", out.Reminder)
	}
	if len(out.Board.Tomorrow) != 1 || len(out.Board.All) != 1 {
		t.Fatalf("expected reloaded board with one reminder, got %+v", out.Board)
	}
	id := out.Reminder.ID

	out, err = svc.Execute(ctx, service.CreateCommand{Input: service.CreateReminderInput{Title: "Later", Date: "2025-07-01"}}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(out.Board.All) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(out.Board.All))
	}

	out, err = svc.Execute(ctx, service.SetDoneCommand{ID: id, Done: true}, false)
	if err != nil {
		t.Fatalf("set done: %v", err)
	}
	if out.Reminder != nil {
		t.Errorf("expected no reminder for set done, got %+v", out.Reminder)
	}
	if len(out.Board.Tomorrow) != 0 || len(out.Board.All) != 1 {
		t.Errorf("expected done reminder hidden, got %+v", out.Board)
	}

	out, err = svc.Execute(ctx, service.RemoveCommand{ID: id}, true)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(out.Board.All) != 1 || out.Board.All[0].Title != "Later" {
		t.Errorf("expected only Later to remain, got %+v", out.Board.All)
	}
}

func TestExecute_CommandErrorSkipsReload(t *testing.T) {
	listed := false
	repo := &mockReminderRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return errors.New("db error")
		},
		listFn: func(ctx context.Context) ([]model.Reminder, error) {
			listed = true
			return nil, nil
		},
	}

	_, err := newService(repo).Execute(context.Background(), service.RemoveCommand{ID: "rem-1"}, false)
	if !errors.Is(err, service.ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
	if listed {
		t.Error("expected no reload after a failed command")
	}
}

func TestExecute_CancelledBeforeReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	listed := false
	repo := &mockReminderRepo{
		createFn: func(c context.Context, r model.Reminder) (model.Reminder, error) {
			cancel()
			return echoCreate(c, r)
		},
		listFn: func(ctx context.Context) ([]model.Reminder, error) {
			listed = true
			return nil, nil
		},
	}

	out, err := newService(repo).Execute(ctx, service.QuickAddCommand{Text: "Doctor tomorrow"}, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Reminder == nil {
		t.Error("expected the created reminder to be reported")
	}
	if listed {
		t.Error("expected reload to be skipped")
	}
}
