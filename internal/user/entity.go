package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string         `gorm:"type:text;not null" json:"name"`
	Email         string         `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Role          string         `gorm:"type:text;not null;default:'student'" json:"role"`
	LearningStyle string         `gorm:"type:text" json:"learning_style,omitempty"`
	GradeLevel    string         `gorm:"type:text" json:"grade_level,omitempty"`
	Strengths     datatypes.JSON `gorm:"type:jsonb" json:"strengths,omitempty"`
	Weaknesses    datatypes.JSON `gorm:"type:jsonb" json:"weaknesses,omitempty"`
	Goals         datatypes.JSON `gorm:"type:jsonb" json:"goals,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
