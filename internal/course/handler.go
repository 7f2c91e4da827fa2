package course

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edustack-io/edustack/internal/auth"
	"github.com/edustack-io/edustack/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service CourseService
}

func NewHandler(service CourseService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CreateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(dto); err != nil {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	ownerID := uuid.MustParse(claims.UserID)
	course, err := h.service.CreateCourse(r.Context(), ownerID, dto)
	if err != nil {
		log.WithError(err).Error("Failed to create course")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, course)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	courses, err := h.service.ListCourses(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, courses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	courseID := chi.URLParam(r, "id")
	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load course")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, course)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto UpdateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	courseID := chi.URLParam(r, "id")
	ownerID := uuid.MustParse(claims.UserID)
	course, err := h.service.UpdateCourse(r.Context(), courseID, ownerID, dto)
	if err != nil {
		h.writeServiceError(w, log, err, "Failed to update course")
		return
	}

	config.JSON(w, http.StatusOK, course)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courseID := chi.URLParam(r, "id")
	ownerID := uuid.MustParse(claims.UserID)
	if err := h.service.DeleteCourse(r.Context(), courseID, ownerID); err != nil {
		h.writeServiceError(w, log, err, "Failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto CreateLessonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(dto); err != nil {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	courseID := chi.URLParam(r, "id")
	ownerID := uuid.MustParse(claims.UserID)
	lesson, err := h.service.AddLesson(r.Context(), courseID, ownerID, dto)
	if err != nil {
		h.writeServiceError(w, log, err, "Failed to add lesson")
		return
	}

	config.JSON(w, http.StatusCreated, lesson)
}

func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	courseID := chi.URLParam(r, "id")
	lessons, err := h.service.ListLessons(r.Context(), courseID)
	if err != nil {
		log.WithError(err).Error("Failed to list lessons")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, lessons)
}

func (h *Handler) RemoveLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	lessonID := chi.URLParam(r, "lessonID")
	if err := h.service.RemoveLesson(r.Context(), lessonID); err != nil {
		log.WithError(err).Error("Failed to remove lesson")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "lesson removed successfully",
	})
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	userID := uuid.MustParse(claims.UserID)
	if err := h.service.Enroll(r.Context(), userID, courseID); err != nil {
		h.writeServiceError(w, log, err, "Failed to enroll user")
		return
	}

	config.JSON(w, http.StatusCreated, map[string]string{
		"message": "enrolled successfully",
	})
}

func (h *Handler) Unenroll(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}

	userID := uuid.MustParse(claims.UserID)
	if err := h.service.Unenroll(r.Context(), userID, courseID); err != nil {
		log.WithError(err).Error("Failed to unenroll user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID := uuid.MustParse(claims.UserID)
	enrollments, err := h.service.ListEnrollments(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list enrollments")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, enrollments)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, ErrCourseNotFound):
		http.Error(w, "course not found", http.StatusNotFound)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		log.WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
