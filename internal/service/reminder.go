package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jaekwang-park/reminder-api/internal/extract"
	"github.com/jaekwang-park/reminder-api/internal/model"
	"github.com/jaekwang-park/reminder-api/internal/repository"
	"github.com/jaekwang-park/reminder-api/internal/view"
)

type CreateReminderInput struct {
	Title string
	Date  string // YYYY-MM-DD
	Time  string // HH:MM, optional
}

type Option func(*ReminderService)

// WithClock replaces time.Now as the service's notion of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *ReminderService) {
		s.now = now
	}
}

type ReminderService struct {
	repo      repository.ReminderRepository
	extractor *extract.Extractor
	loc       *time.Location
	now       func() time.Time
}

// NewReminderService builds the service. loc is the observer's zone, used for
// free-text resolution, structured dates and the tomorrow bucket.
func NewReminderService(repo repository.ReminderRepository, extractor *extract.Extractor, loc *time.Location, opts ...Option) *ReminderService {
	if loc == nil {
		loc = time.Local
	}
	s := &ReminderService{
		repo:      repo,
		extractor: extractor,
		loc:       loc,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a reminder from a structured entry. A missing time defaults
// to 09:00.
func (s *ReminderService) Create(ctx context.Context, input CreateReminderInput) (model.Reminder, error) {
	title := strings.Join(strings.Fields(input.Title), " ")
	if title == "" {
		return model.Reminder{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	dueAt, err := extract.ParseDate(input.Date, strings.TrimSpace(input.Time), s.loc)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.create(ctx, title, dueAt)
}

// CreateFromText stores a reminder described in free text, e.g.
// "Doctor tomorrow 5pm". Nothing is stored when no date can be resolved.
func (s *ReminderService) CreateFromText(ctx context.Context, text string) (model.Reminder, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Reminder{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	found, err := s.extractor.Extract(text, s.now().In(s.loc))
	if err != nil {
		return model.Reminder{}, err
	}

	return s.create(ctx, extract.DeriveTitle(text, found.Span), found.DueAt)
}

func (s *ReminderService) create(ctx context.Context, title string, dueAt time.Time) (model.Reminder, error) {
	reminder := model.Reminder{
		Title:  title,
		DueAt:  dueAt,
		Done:   false,
		UserID: nil,
	}

	created, err := s.repo.Create(ctx, reminder)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("%w: failed to create reminder: %w", ErrStoreWrite, err)
	}

	return created, nil
}

// List returns every reminder, earliest due first.
func (s *ReminderService) List(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list reminders: %w", ErrStoreRead, err)
	}
	return reminders, nil
}

// SetDone sets the done flag and nothing else. Repeating a call is harmless.
func (s *ReminderService) SetDone(ctx context.Context, id string, done bool) error {
	if err := s.repo.SetDone(ctx, id, done); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: failed to update reminder: %w", ErrStoreWrite, err)
	}
	return nil
}

// Remove deletes a reminder. Removing an id that is already gone reports
// ErrNotFound.
func (s *ReminderService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: failed to delete reminder: %w", ErrStoreWrite, err)
	}
	return nil
}

// Board lists all reminders and partitions them for the current time.
func (s *ReminderService) Board(ctx context.Context, showCompleted bool) (view.Board, error) {
	reminders, err := s.List(ctx)
	if err != nil {
		return view.Board{}, err
	}
	return view.Partition(reminders, showCompleted, s.now(), s.loc), nil
}
