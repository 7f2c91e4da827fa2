package quiz

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type CreateQuizDTO struct {
	CourseID        uuid.UUID  `json:"course_id" validate:"required"`
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	IsActive        *bool      `json:"is_active"`
	AvailableFrom   *time.Time `json:"available_from"`
	AvailableUntil  *time.Time `json:"available_until"`
	AttemptsAllowed int        `json:"attempts_allowed" validate:"gte=0"`
	PassingScore    int        `json:"passing_score" validate:"gte=0,lte=100"`

	Questions []AddQuestionDTO `json:"questions"`
}

type UpdateQuizDTO struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	IsActive        *bool      `json:"is_active"`
	AvailableFrom   *time.Time `json:"available_from"`
	AvailableUntil  *time.Time `json:"available_until"`
	AttemptsAllowed *int       `json:"attempts_allowed"`
	PassingScore    *int       `json:"passing_score"`
}

type AddQuestionDTO struct {
	Content       string   `json:"content" validate:"required"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   *string  `json:"explanation"`
	Points        int      `json:"points"`
	OrderIndex    int      `json:"order_index"`
}

type SubmitAttemptDTO struct {
	// Answers maps question IDs to the learner's answer.
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

type EligibilityResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

type AttemptResponse struct {
	Attempt       *QuizAttempt `json:"attempt"`
	TotalPoints   int          `json:"total_points"`
	EarnedPoints  int          `json:"earned_points"`
	QuestionCount int          `json:"question_count"`
	CorrectCount  int          `json:"correct_count"`
}

type QuizWithStatsDTO struct {
	Quiz          *Quiz `json:"quiz"`
	QuestionCount int   `json:"question_count"`
	TotalPoints   int   `json:"total_points"`
}
