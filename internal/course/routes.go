package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/lessons", h.AddLesson)
	r.Get("/{id}/lessons", h.ListLessons)
	r.Delete("/lessons/{lessonID}", h.RemoveLesson)

	r.Post("/{id}/enrollments", h.Enroll)
	r.Delete("/{id}/enrollments", h.Unenroll)
	r.Get("/enrollments", h.ListEnrollments)

	return r
}
