package aitutor

import (
	"encoding/json"
	"net/http"

	"github.com/edustack-io/edustack/internal/auth"
	"github.com/edustack-io/edustack/internal/config"
	"github.com/google/uuid"
)

// aiUnavailableMessage is what clients see when the provider call fails.
// Provider error bodies are only logged, never returned.
const aiUnavailableMessage = "the AI tutor is unavailable right now, please try again"

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID := uuid.MustParse(claims.UserID)
	recommendation, err := h.service.Recommend(r.Context(), userID, req)
	if err != nil {
		log.WithError(err).Error("Failed to generate learning recommendation")
		http.Error(w, aiUnavailableMessage, http.StatusBadGateway)
		return
	}

	config.JSON(w, http.StatusOK, recommendation)
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("Failed to generate quiz questions")
		http.Error(w, aiUnavailableMessage, http.StatusBadGateway)
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.service.Chat(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("Tutor chat failed")
		http.Error(w, aiUnavailableMessage, http.StatusBadGateway)
		return
	}

	config.JSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID := uuid.MustParse(claims.UserID)
	analysis, err := h.service.Analyze(r.Context(), userID, req)
	if err != nil {
		log.WithError(err).Error("Failed to analyze learning pattern")
		http.Error(w, aiUnavailableMessage, http.StatusBadGateway)
		return
	}

	config.JSON(w, http.StatusOK, analysis)
}
