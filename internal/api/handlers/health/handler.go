package health

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-QuizBot/internal/api/handlers"
)

type Handler struct {
	startedAt time.Time
}

func NewHandler(startedAt time.Time) *Handler {
	return &Handler{
		startedAt: startedAt,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
