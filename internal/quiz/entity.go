package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// defaultQuestionPoints is the score a question is worth when no explicit
// value was stored.
const defaultQuestionPoints = 10

type Quiz struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	Title           string     `gorm:"type:text;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	AvailableFrom   *time.Time `json:"available_from,omitempty"`
	AvailableUntil  *time.Time `json:"available_until,omitempty"`
	AttemptsAllowed int        `gorm:"not null;default:0" json:"attempts_allowed"`
	PassingScore    int        `gorm:"not null;default:60" json:"passing_score"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Type          string         `gorm:"type:text;not null;default:'multiple_choice'" json:"type"`
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   *string        `gorm:"type:text" json:"explanation,omitempty"`
	Points        int            `gorm:"not null;default:10" json:"points"`
	OrderIndex    int            `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type QuizAttempt struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Answers     datatypes.JSON `gorm:"type:jsonb" json:"answers,omitempty"`
	Score       int            `gorm:"not null;default:0" json:"score"`
	Passed      bool           `gorm:"not null;default:false" json:"passed"`
	SubmittedAt time.Time      `gorm:"autoCreateTime" json:"submitted_at"`
}

func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}

// TotalPoints sums the points of every question. Questions stored without a
// point value count as defaultQuestionPoints.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		points := question.Points
		if points <= 0 {
			points = defaultQuestionPoints
		}
		total += points
	}
	return total
}
