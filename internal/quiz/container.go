package quiz

import "gorm.io/gorm"

type QuizContainer struct {
	Handler *Handler
	Service QuizService
}

func NewQuizContainer(db *gorm.DB, enrollments EnrollmentSource, policy EnrollmentPolicy) *QuizContainer {
	repo := NewRepository(db)
	evaluator := NewEvaluator(enrollments, repo, policy)
	service := NewService(repo, evaluator)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
	}
}
