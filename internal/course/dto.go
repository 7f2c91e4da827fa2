package course

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CreateCourseDTO struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
}

type UpdateCourseDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Subject     *string `json:"subject"`
}

type CreateLessonDTO struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index"`
}
