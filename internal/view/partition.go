// Package view splits a reminder list into the buckets shown to users.
package view

import (
	"time"

	"github.com/jaekwang-park/reminder-api/internal/model"
)

// Board holds the two display buckets. Both keep the order of the input.
type Board struct {
	Tomorrow []model.Reminder `json:"tomorrow"`
	All      []model.Reminder `json:"all"`
}

// Partition builds the board for now as seen from loc. Tomorrow is the next
// calendar date in loc, not now+24h, and only holds outstanding reminders
// even when showCompleted is set.
func Partition(reminders []model.Reminder, showCompleted bool, now time.Time, loc *time.Location) Board {
	if loc == nil {
		loc = time.Local
	}

	y, m, d := now.In(loc).Date()
	ty, tm, td := time.Date(y, m, d+1, 12, 0, 0, 0, loc).Date()

	board := Board{
		Tomorrow: []model.Reminder{},
		All:      make([]model.Reminder, 0, len(reminders)),
	}
	for _, r := range reminders {
		if r.Done && !showCompleted {
			continue
		}
		board.All = append(board.All, r)
		if !r.Done && r.DueOn(ty, tm, td, loc) {
			board.Tomorrow = append(board.Tomorrow, r)
		}
	}
	return board
}
