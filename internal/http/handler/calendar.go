package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/reminder-api/internal/calendar"
	"github.com/jaekwang-park/reminder-api/internal/service"
)

type CalendarHandler struct {
	svc *service.ReminderService
}

func NewCalendarHandler(svc *service.ReminderService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// ServeHTTP serves every reminder as an iCalendar feed.
func (h *CalendarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	reminders, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, reminders, time.Now()); err != nil {
		slog.Error("failed to encode calendar", "error", err)
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	WriteCalendar(w, http.StatusOK, buf.Bytes())
}
