// Package extract turns free text such as "Doctor tomorrow 5pm" into a
// title and a due time.
package extract

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrNoDateFound    = errors.New("no date found")
	ErrDateResolution = errors.New("date resolution failed")
	ErrInvalidDate    = errors.New("invalid date")
)

// DefaultHour and DefaultMinute are used when a date carries no usable time.
const (
	DefaultHour   = 9
	DefaultMinute = 0
)

// Span is a half-open byte range [Start, End) within the scanned text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Match is one candidate date/time phrase reported by a Matcher.
type Match struct {
	Span Span
	Text string
	Time time.Time
}

// Matcher finds date/time phrases in free text, resolving them against base.
// The grammar is up to the implementation.
type Matcher interface {
	Match(text string, base time.Time) ([]Match, error)
}

// Extraction is the outcome of a successful Extract.
type Extraction struct {
	Span  Span
	Text  string
	DueAt time.Time
}

type Extractor struct {
	matcher Matcher
}

func NewExtractor(m Matcher) *Extractor {
	return &Extractor{matcher: m}
}

// Extract resolves the leftmost date phrase in text relative to now. Any
// further phrases are ignored, so one submission yields one reminder.
func (e *Extractor) Extract(text string, now time.Time) (Extraction, error) {
	matches, err := e.matcher.Match(text, now)
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %w", ErrDateResolution, err)
	}
	if len(matches) == 0 {
		return Extraction{}, ErrNoDateFound
	}

	first := slices.MinFunc(matches, func(a, b Match) int {
		return a.Span.Start - b.Span.Start
	})
	if first.Time.IsZero() {
		return Extraction{}, fmt.Errorf("%w: %q did not resolve to an instant", ErrDateResolution, first.Text)
	}

	return Extraction{
		Span:  first.Span,
		Text:  first.Text,
		DueAt: NormalizeTime(first.Time),
	}, nil
}

// NormalizeTime moves a midnight instant to the default time on the same
// date. Midnight is read as "no time given"; a genuine midnight reminder
// cannot be told apart and is moved too.
func NormalizeTime(t time.Time) time.Time {
	if t.Hour() != 0 || t.Minute() != 0 {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, DefaultHour, DefaultMinute, 0, 0, t.Location())
}

// ParseDate builds a due time from a structured "2006-01-02" date and an
// optional "15:04" clock. A clock without a colon, including the empty
// string, means the default time.
func ParseDate(date, clock string, loc *time.Location) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, date)
	}

	hour, minute := DefaultHour, DefaultMinute
	if strings.Contains(clock, ":") {
		c, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidDate, clock)
		}
		hour, minute = c.Hour(), c.Minute()
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), nil
}
