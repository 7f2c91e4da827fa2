package aitutor

import (
	"github.com/edustack-io/edustack/internal/llm"
	"github.com/edustack-io/edustack/internal/quiz"
	"github.com/edustack-io/edustack/internal/user"
)

type AITutorContainer struct {
	Handler *Handler
	Service Service
}

func NewAITutorContainer(client *llm.Client, quizzes quiz.QuizService, users user.UserRepository) *AITutorContainer {
	service := NewService(client, quizzes, users)
	handler := NewHandler(service)

	return &AITutorContainer{
		Handler: handler,
		Service: service,
	}
}
