package container

import (
	"context"
	"log"
	"os"

	"github.com/edustack-io/edustack/internal/aitutor"
	"github.com/edustack-io/edustack/internal/auth"
	"github.com/edustack-io/edustack/internal/config"
	"github.com/edustack-io/edustack/internal/course"
	"github.com/edustack-io/edustack/internal/llm"
	"github.com/edustack-io/edustack/internal/quiz"
	"github.com/edustack-io/edustack/internal/user"
)

type Container struct {
	UserContainer    *user.UserContainer
	CourseContainer  *course.CourseContainer
	QuizContainer    *quiz.QuizContainer
	AITutorContainer *aitutor.AITutorContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	llmClient := llm.NewClient(
		os.Getenv("LLM_API_KEY"),
		config.Getenv("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
		config.Getenv("LLM_APP_REFERER", "https://edustack.io"),
		config.Getenv("LLM_APP_TITLE", "EduStack"),
	)

	userContainer := user.NewUserContainer(config.DB)
	courseContainer := course.NewCourseContainer(config.DB)
	quizContainer := quiz.NewQuizContainer(config.DB, courseContainer.Service, enrollmentPolicy())
	aiTutorContainer := aitutor.NewAITutorContainer(llmClient, quizContainer.Service, userContainer.Repo)

	return &Container{
		UserContainer:    userContainer,
		CourseContainer:  courseContainer,
		QuizContainer:    quizContainer,
		AITutorContainer: aiTutorContainer,
	}
}

// enrollmentPolicy reads how the quiz evaluator treats enrollment-source
// failures. The default mirrors the historic behavior: fail open.
func enrollmentPolicy() quiz.EnrollmentPolicy {
	if os.Getenv("QUIZ_ENROLLMENT_POLICY") == "fail_closed" {
		return quiz.EnrollmentFailClosed
	}
	return quiz.EnrollmentFailOpen
}
