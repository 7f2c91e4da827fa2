package aitutor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/recommendations", h.Recommend)
	r.Post("/quiz-questions", h.GenerateQuestions)
	r.Post("/chat", h.Chat)
	r.Post("/analysis", h.Analyze)
	return r
}
