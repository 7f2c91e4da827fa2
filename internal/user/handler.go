package user

import (
	"encoding/json"
	"net/http"

	"github.com/edustack-io/edustack/internal/auth"
	"github.com/edustack-io/edustack/internal/config"
	"gorm.io/datatypes"
)

type Handler struct {
	repo UserRepository
}

func NewHandler(repo UserRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.repo.GetByID(claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	config.JSON(w, http.StatusOK, u)
}

type updateProfilePayload struct {
	Name          *string  `json:"name"`
	LearningStyle *string  `json:"learning_style"`
	GradeLevel    *string  `json:"grade_level"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Goals         []string `json:"goals"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var payload updateProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.repo.GetByID(claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	if payload.Name != nil {
		u.Name = *payload.Name
	}
	if payload.LearningStyle != nil {
		u.LearningStyle = *payload.LearningStyle
	}
	if payload.GradeLevel != nil {
		u.GradeLevel = *payload.GradeLevel
	}
	if payload.Strengths != nil {
		u.Strengths = mustJSON(payload.Strengths)
	}
	if payload.Weaknesses != nil {
		u.Weaknesses = mustJSON(payload.Weaknesses)
	}
	if payload.Goals != nil {
		u.Goals = mustJSON(payload.Goals)
	}

	if err := h.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to update user profile")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, u)
}

func mustJSON(v []string) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
