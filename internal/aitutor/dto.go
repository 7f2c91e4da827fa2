package aitutor

import (
	"github.com/edustack-io/edustack/internal/llm"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type RecommendRequest struct {
	// Profile overrides the stored student profile when set.
	Profile *llm.StudentProfile     `json:"profile"`
	History []llm.PerformanceRecord `json:"history"`
}

type GenerateQuestionsRequest struct {
	Topic         string   `json:"topic" validate:"required"`
	Difficulty    string   `json:"difficulty"`
	QuestionCount int      `json:"question_count"`
	QuestionTypes []string `json:"question_types"`

	// QuizID persists the generated questions into an existing quiz when set.
	QuizID *uuid.UUID `json:"quiz_id"`
}

type ChatRequest struct {
	Message string             `json:"message" validate:"required"`
	History []llm.Message      `json:"history"`
	Context llm.StudentContext `json:"context"`
}

type AnalyzeRequest struct {
	// Records overrides the learner's stored attempt history when set.
	Records []llm.PerformanceRecord `json:"records"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type GenerateQuestionsResponse struct {
	Questions []llm.GeneratedQuestion `json:"questions"`
	Persisted int                     `json:"persisted,omitempty"`
}
