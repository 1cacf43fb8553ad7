package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jaekwang-park/reminder-api/internal/http/handler"
	"github.com/jaekwang-park/reminder-api/internal/service"
)

// Deps are the collaborators the router hands to its handlers.
type Deps struct {
	Reminders *service.ReminderService
	// Store is pinged by /health. Leave nil for stores without a connection.
	Store handler.Pinger
	// Gatherer backs /metrics. Nil leaves the endpoint unregistered.
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for ALB health check compatibility
	mux.Handle("/health", handler.NewHealthHandler(d.Store))

	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	reminders := handler.NewReminderHandler(d.Reminders)
	mux.Handle("/api/v1/reminders", reminders)
	mux.Handle("/api/v1/reminders/", reminders)
	mux.Handle("/api/v1/reminders.ics", handler.NewCalendarHandler(d.Reminders))
	mux.Handle("/api/v1/board", handler.NewBoardHandler(d.Reminders))

	return mux
}
