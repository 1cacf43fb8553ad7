package service

import (
	"context"

	"github.com/jaekwang-park/reminder-api/internal/model"
	"github.com/jaekwang-park/reminder-api/internal/view"
)

// Command is a single user action against the reminder collection.
type Command interface {
	apply(ctx context.Context, s *ReminderService) (*model.Reminder, error)
}

type CreateCommand struct {
	Input CreateReminderInput
}

func (c CreateCommand) apply(ctx context.Context, s *ReminderService) (*model.Reminder, error) {
	r, err := s.Create(ctx, c.Input)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type QuickAddCommand struct {
	Text string
}

func (c QuickAddCommand) apply(ctx context.Context, s *ReminderService) (*model.Reminder, error) {
	r, err := s.CreateFromText(ctx, c.Text)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type SetDoneCommand struct {
	ID   string
	Done bool
}

func (c SetDoneCommand) apply(ctx context.Context, s *ReminderService) (*model.Reminder, error) {
	return nil, s.SetDone(ctx, c.ID, c.Done)
}

type RemoveCommand struct {
	ID string
}

func (c RemoveCommand) apply(ctx context.Context, s *ReminderService) (*model.Reminder, error) {
	return nil, s.Remove(ctx, c.ID)
}

// Outcome is the result of Execute: the reminder a command created, if any,
// and the board re-read after the command.
type Outcome struct {
	Reminder *model.Reminder `json:"reminder,omitempty"`
	Board    view.Board      `json:"board"`
}

// Execute applies cmd and then reloads the board from the store. The reload
// is a separate step; when ctx ends between the two, the mutation stands and
// ctx.Err() is returned alongside whatever the command produced.
func (s *ReminderService) Execute(ctx context.Context, cmd Command, showCompleted bool) (Outcome, error) {
	created, err := cmd.apply(ctx, s)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Reminder: created}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	board, err := s.Board(ctx, showCompleted)
	if err != nil {
		return out, err
	}
	out.Board = board
	return out, nil
}
