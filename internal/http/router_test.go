package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jaekwang-park/reminder-api/internal/extract"
	reminderhttp "github.com/jaekwang-park/reminder-api/internal/http"
	"github.com/jaekwang-park/reminder-api/internal/metrics"
	"github.com/jaekwang-park/reminder-api/internal/repository"
	"github.com/jaekwang-park/reminder-api/internal/service"
)

// tomorrowMatcher resolves the word "tomorrow" to 09:00 the next day.
type tomorrowMatcher struct{}

func (tomorrowMatcher) Match(text string, base time.Time) ([]extract.Match, error) {
	i := strings.Index(text, "tomorrow")
	if i < 0 {
		return nil, nil
	}
	y, m, d := base.Date()
	return []extract.Match{{
		Span: extract.Span{Start: i, End: i + len("tomorrow")},
		Text: "tomorrow",
		Time: time.Date(y, m, d+1, 0, 0, 0, 0, base.Location()),
	}}, nil
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func newTestDeps(t *testing.T) reminderhttp.Deps {
	t.Helper()
	reg := prometheus.NewRegistry()
	observer, err := metrics.NewPrometheusObserver("", reg)
	if err != nil {
		t.Fatalf("register metrics: %v", err)
	}
	repo := repository.Instrument(repository.NewMemoryReminder(), observer)
	svc := service.NewReminderService(repo, extract.NewExtractor(tomorrowMatcher{}), time.UTC)
	return reminderhttp.Deps{Reminders: svc, Gatherer: reg}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		store      func(ctx context.Context) error
		wantStatus int
		wantBody   string
	}{
		{"no store", nil, http.StatusOK, "ok"},
		{"store reachable", func(ctx context.Context) error { return nil }, http.StatusOK, "ok"},
		{"store down", func(ctx context.Context) error { return errors.New("refused") }, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t)
			if tt.store != nil {
				deps.Store = pingerFunc(tt.store)
			}
			router := reminderhttp.NewRouter(deps)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var result map[string]string
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result["status"] != tt.wantBody {
				t.Errorf("expected status=%s, got %s", tt.wantBody, result["status"])
			}
		})
	}
}

func TestRouter_EndpointsRegistered(t *testing.T) {
	router := reminderhttp.NewRouter(newTestDeps(t))

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/reminders", "", http.StatusOK},
		{http.MethodPost, "/api/v1/reminders", `{"title":"Sync","date":"2025-06-12"}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/reminders/quick", `{"text":"Call mom tomorrow"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/board", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reminders.ics", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/reminders/missing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d (body: %s)", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := reminderhttp.NewRouter(newTestDeps(t))

	// one store operation so the histogram has a series
	list := httptest.NewRequest(http.MethodGet, "/api/v1/reminders", nil)
	router.ServeHTTP(httptest.NewRecorder(), list)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `reminder_store_operation_duration_seconds_count{operation="list"} 1`) {
		t.Errorf("expected list operation in metrics output, got:\n%s", w.Body.String())
	}
}

func TestRouter_MetricsDisabled(t *testing.T) {
	deps := newTestDeps(t)
	deps.Gatherer = nil
	router := reminderhttp.NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := reminderhttp.NewRouter(newTestDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
