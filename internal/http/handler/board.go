package handler

import (
	"net/http"

	"github.com/jaekwang-park/reminder-api/internal/service"
)

type BoardHandler struct {
	svc *service.ReminderService
}

func NewBoardHandler(svc *service.ReminderService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// ServeHTTP serves the tomorrow/all buckets for GET /api/v1/board.
func (h *BoardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}
	showCompleted, ok := showCompletedParam(w, r)
	if !ok {
		return
	}

	board, err := h.svc.Board(r.Context(), showCompleted)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, board)
}
