// Package calendar renders reminders as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/jaekwang-park/reminder-api/internal/model"
)

const (
	ProductID = "-//reminder-api//Reminders//EN"
	uidDomain = "reminder-api"
)

// Build returns a calendar holding one VTODO per reminder.
func Build(reminders []model.Reminder, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	stamp := now.UTC()
	for _, r := range reminders {
		todo := ical.NewComponent(ical.CompToDo)
		todo.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", r.ID, uidDomain))
		todo.Props.SetText(ical.PropSummary, r.Title)
		todo.Props.SetDateTime(ical.PropDue, r.DueAt.UTC())
		todo.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		if !r.CreatedAt.IsZero() {
			todo.Props.SetDateTime(ical.PropCreated, r.CreatedAt.UTC())
		}
		if r.Done {
			todo.Props.SetText(ical.PropStatus, "COMPLETED")
		} else {
			todo.Props.SetText(ical.PropStatus, "NEEDS-ACTION")
		}
		cal.Children = append(cal.Children, todo)
	}
	return cal
}

// Encode writes the reminders to w as an iCalendar document.
func Encode(w io.Writer, reminders []model.Reminder, now time.Time) error {
	if len(reminders) == 0 {
		// go-ical rejects a VCALENDAR without children
		_, err := fmt.Fprintf(w, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:%s\r\nEND:VCALENDAR\r\n", ProductID)
		return err
	}
	if err := ical.NewEncoder(w).Encode(Build(reminders, now)); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
