package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jaekwang-park/reminder-api/internal/service"
)

type ReminderHandler struct {
	svc *service.ReminderService
}

func NewReminderHandler(svc *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

// ServeHTTP routes /api/v1/reminders and /api/v1/reminders/{id}
func (h *ReminderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/reminders")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	reminderID := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	// /api/v1/reminders/quick
	if reminderID == "quick" && subPath == "" {
		h.handleQuickAdd(w, r)
		return
	}

	// /api/v1/reminders/{id}/done
	if reminderID != "" && subPath == "done" {
		h.handleSetDone(w, r, reminderID)
		return
	}

	// /api/v1/reminders/{id}
	if reminderID != "" && subPath == "" {
		if r.Method != http.MethodDelete {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleDelete(w, r, reminderID)
		return
	}

	if reminderID != "" {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	// /api/v1/reminders
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

type createReminderRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time,omitempty"`
}

func (h *ReminderHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	showCompleted, ok := showCompletedParam(w, r)
	if !ok {
		return
	}

	var req createReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	cmd := service.CreateCommand{Input: service.CreateReminderInput{
		Title: req.Title,
		Date:  req.Date,
		Time:  req.Time,
	}}

	out, err := h.svc.Execute(r.Context(), cmd, showCompleted)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, out)
}

type quickAddRequest struct {
	Text string `json:"text"`
}

func (h *ReminderHandler) handleQuickAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	showCompleted, ok := showCompletedParam(w, r)
	if !ok {
		return
	}

	var req quickAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	out, err := h.svc.Execute(r.Context(), service.QuickAddCommand{Text: req.Text}, showCompleted)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, out)
}

type setDoneRequest struct {
	Done *bool `json:"done"`
}

func (h *ReminderHandler) handleSetDone(w http.ResponseWriter, r *http.Request, reminderID string) {
	if r.Method != http.MethodPatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	showCompleted, ok := showCompletedParam(w, r)
	if !ok {
		return
	}

	var req setDoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Done == nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "done is required")
		return
	}

	out, err := h.svc.Execute(r.Context(), service.SetDoneCommand{ID: reminderID, Done: *req.Done}, showCompleted)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, out)
}

func (h *ReminderHandler) handleDelete(w http.ResponseWriter, r *http.Request, reminderID string) {
	showCompleted, ok := showCompletedParam(w, r)
	if !ok {
		return
	}

	out, err := h.svc.Execute(r.Context(), service.RemoveCommand{ID: reminderID}, showCompleted)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, out)
}

func (h *ReminderHandler) handleList(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"reminders": reminders})
}

// showCompletedParam reads ?show_completed=, writing a 400 when it is not a
// boolean.
func showCompletedParam(w http.ResponseWriter, r *http.Request) (bool, bool) {
	raw := r.URL.Query().Get("show_completed")
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "show_completed must be a boolean")
		return false, false
	}
	return v, true
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrNoDateFound):
		WriteError(w, http.StatusUnprocessableEntity, "NO_DATE_FOUND",
			"no date or time found in the text; try adding one like 'tomorrow' or 'Jan 10'")
	case errors.Is(err, service.ErrDateResolution):
		WriteError(w, http.StatusUnprocessableEntity, "DATE_RESOLUTION_FAILED", "date parsing failed; try a different phrasing")
	case errors.Is(err, service.ErrStoreRead):
		WriteError(w, http.StatusServiceUnavailable, "STORE_READ_FAILED", "failed to load reminders")
	case errors.Is(err, service.ErrStoreWrite):
		WriteError(w, http.StatusServiceUnavailable, "STORE_WRITE_FAILED", "failed to save reminder")
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
