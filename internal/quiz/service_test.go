package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	quiz     *Quiz
	attempts []*QuizAttempt
}

func (f *fakeRepo) Create(q *Quiz) error                          { f.quiz = q; return nil }
func (f *fakeRepo) GetByID(id string) (*Quiz, error)              { return f.quiz, nil }
func (f *fakeRepo) ListByCourse(courseID string) ([]*Quiz, error) { return []*Quiz{f.quiz}, nil }
func (f *fakeRepo) Update(q *Quiz) error                          { f.quiz = q; return nil }
func (f *fakeRepo) AddQuestions(questions []*QuizQuestion) error  { return nil }

func (f *fakeRepo) Delete(id string) error {
	if f.quiz == nil || f.quiz.ID.String() != id {
		return gorm.ErrRecordNotFound
	}
	f.quiz = nil
	return nil
}

func (f *fakeRepo) DeleteQuestion(id string) error {
	if f.quiz == nil {
		return gorm.ErrRecordNotFound
	}
	for i, question := range f.quiz.Questions {
		if question.ID.String() == id {
			f.quiz.Questions = append(f.quiz.Questions[:i], f.quiz.Questions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListQuestionsByQuiz(quizID string) ([]*QuizQuestion, error) {
	return nil, nil
}

func (f *fakeRepo) CreateAttempt(a *QuizAttempt) error {
	f.attempts = append(f.attempts, a)
	return nil
}

func (f *fakeRepo) CountByUserAndQuiz(ctx context.Context, userID, quizID uuid.UUID) (int64, error) {
	return int64(len(f.attempts)), nil
}

func (f *fakeRepo) ListAttemptsByUser(userID uuid.UUID) ([]*QuizAttempt, error) {
	return f.attempts, nil
}

func newGradedQuiz() (*Quiz, []uuid.UUID) {
	q1 := uuid.New()
	q2 := uuid.New()
	q := &Quiz{
		ID:           uuid.New(),
		CourseID:     uuid.New(),
		IsActive:     true,
		PassingScore: 60,
		Questions: []QuizQuestion{
			{ID: q1, Content: "2+2?", CorrectAnswer: "4", Points: 10},
			{ID: q2, Content: "Capital of France?", CorrectAnswer: "Paris", Points: 30},
		},
	}
	return q, []uuid.UUID{q1, q2}
}

func newServiceWithQuiz(q *Quiz) (QuizService, *fakeRepo) {
	repo := &fakeRepo{quiz: q}
	evaluator := NewEvaluator(&fakeEnrollments{enrolled: true}, repo, EnrollmentFailOpen)
	return NewService(repo, evaluator), repo
}

func TestSubmitAttempt(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("AllCorrect", func(t *testing.T) {
		q, ids := newGradedQuiz()
		service, repo := newServiceWithQuiz(q)

		result, err := service.SubmitAttempt(ctx, q.ID.String(), userID, SubmitAttemptDTO{
			Answers: map[string]string{
				ids[0].String(): "4",
				ids[1].String(): "paris", // answers are matched case-insensitively
			},
		})
		if err != nil {
			t.Fatalf("SubmitAttempt failed: %v", err)
		}

		if result.Attempt.Score != 100 {
			t.Errorf("expected score 100, got %d", result.Attempt.Score)
		}
		if !result.Attempt.Passed {
			t.Error("full score should pass")
		}
		if result.CorrectCount != 2 {
			t.Errorf("expected 2 correct answers, got %d", result.CorrectCount)
		}
		if len(repo.attempts) != 1 {
			t.Errorf("attempt was not persisted, have %d", len(repo.attempts))
		}
	})

	t.Run("PartiallyCorrect", func(t *testing.T) {
		q, ids := newGradedQuiz()
		service, _ := newServiceWithQuiz(q)

		result, err := service.SubmitAttempt(ctx, q.ID.String(), userID, SubmitAttemptDTO{
			Answers: map[string]string{
				ids[0].String(): "4",
				ids[1].String(): "London",
			},
		})
		if err != nil {
			t.Fatalf("SubmitAttempt failed: %v", err)
		}

		// 10 of 40 points.
		if result.Attempt.Score != 25 {
			t.Errorf("expected score 25, got %d", result.Attempt.Score)
		}
		if result.Attempt.Passed {
			t.Error("25 should not pass with a passing score of 60")
		}
	})

	t.Run("RejectedByEvaluator", func(t *testing.T) {
		q, ids := newGradedQuiz()
		q.IsActive = false
		service, repo := newServiceWithQuiz(q)

		_, err := service.SubmitAttempt(ctx, q.ID.String(), userID, SubmitAttemptDTO{
			Answers: map[string]string{ids[0].String(): "4"},
		})

		var eligibility *EligibilityError
		if !errors.As(err, &eligibility) {
			t.Fatalf("expected an EligibilityError, got: %v", err)
		}
		if eligibility.Reason != ReasonNotAvailable {
			t.Errorf("wrong rejection reason: %q", eligibility.Reason)
		}
		if len(repo.attempts) != 0 {
			t.Error("rejected attempt must not be persisted")
		}
	})

	t.Run("AttemptLimitEnforced", func(t *testing.T) {
		q, ids := newGradedQuiz()
		q.AttemptsAllowed = 1
		service, _ := newServiceWithQuiz(q)

		answers := SubmitAttemptDTO{Answers: map[string]string{ids[0].String(): "4"}}
		if _, err := service.SubmitAttempt(ctx, q.ID.String(), userID, answers); err != nil {
			t.Fatalf("first attempt should succeed: %v", err)
		}

		_, err := service.SubmitAttempt(ctx, q.ID.String(), userID, answers)
		var eligibility *EligibilityError
		if !errors.As(err, &eligibility) {
			t.Fatalf("second attempt should be rejected, got: %v", err)
		}
	})
}

func TestDeleteQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesExistingQuiz", func(t *testing.T) {
		q, _ := newGradedQuiz()
		service, repo := newServiceWithQuiz(q)

		if err := service.DeleteQuiz(ctx, q.ID.String()); err != nil {
			t.Fatalf("DeleteQuiz failed: %v", err)
		}
		if repo.quiz != nil {
			t.Error("quiz was not removed")
		}
	})

	t.Run("UnknownQuizReturnsNotFound", func(t *testing.T) {
		q, _ := newGradedQuiz()
		service, _ := newServiceWithQuiz(q)

		err := service.DeleteQuiz(ctx, uuid.NewString())
		if !errors.Is(err, ErrQuizNotFound) {
			t.Errorf("deleting an unknown quiz must report not found, got: %v", err)
		}
	})
}

func TestRemoveQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesExistingQuestion", func(t *testing.T) {
		q, ids := newGradedQuiz()
		service, repo := newServiceWithQuiz(q)

		if err := service.RemoveQuestion(ctx, ids[0].String()); err != nil {
			t.Fatalf("RemoveQuestion failed: %v", err)
		}
		if repo.quiz.QuestionCount() != 1 {
			t.Errorf("expected 1 remaining question, got %d", repo.quiz.QuestionCount())
		}
	})

	t.Run("UnknownQuestionReturnsNotFound", func(t *testing.T) {
		q, _ := newGradedQuiz()
		service, _ := newServiceWithQuiz(q)

		err := service.RemoveQuestion(ctx, uuid.NewString())
		if !errors.Is(err, ErrQuestionNotFound) {
			t.Errorf("removing an unknown question must report not found, got: %v", err)
		}
	})
}
