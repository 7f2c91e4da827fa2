package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/edustack-io/edustack/internal/config"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// EligibilityError signals that an attempt was rejected by the evaluator. Its
// reason is safe to show to the learner.
type EligibilityError struct {
	Reason string
}

func (e *EligibilityError) Error() string {
	return e.Reason
}

type QuizService interface {
	CreateQuiz(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
	GetQuiz(ctx context.Context, quizID string) (*QuizWithStatsDTO, error)
	ListByCourse(ctx context.Context, courseID string) ([]*Quiz, error)
	UpdateQuiz(ctx context.Context, quizID string, dto UpdateQuizDTO) (*Quiz, error)
	DeleteQuiz(ctx context.Context, quizID string) error

	AddQuestion(ctx context.Context, quizID string, dto AddQuestionDTO) (*QuizQuestion, error)
	RemoveQuestion(ctx context.Context, questionID string) error

	CheckEligibility(ctx context.Context, quizID string, userID uuid.UUID) (*EligibilityResponse, error)
	SubmitAttempt(ctx context.Context, quizID string, userID uuid.UUID, dto SubmitAttemptDTO) (*AttemptResponse, error)
	ListAttempts(ctx context.Context, userID uuid.UUID) ([]*QuizAttempt, error)
}

type quizService struct {
	repo      QuizRepository
	evaluator *Evaluator
}

func NewService(repo QuizRepository, evaluator *Evaluator) QuizService {
	return &quizService{
		repo:      repo,
		evaluator: evaluator,
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}

	q := &Quiz{
		ID:              uuid.New(),
		CourseID:        dto.CourseID,
		Title:           dto.Title,
		Description:     dto.Description,
		IsActive:        active,
		AvailableFrom:   dto.AvailableFrom,
		AvailableUntil:  dto.AvailableUntil,
		AttemptsAllowed: dto.AttemptsAllowed,
		PassingScore:    dto.PassingScore,
	}

	for i, qdto := range dto.Questions {
		question, err := buildQuestion(q.ID, qdto)
		if err != nil {
			return nil, err
		}
		if question.OrderIndex == 0 {
			question.OrderIndex = i
		}
		q.Questions = append(q.Questions, *question)
	}

	if err := s.repo.Create(q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	log.Infof("Quiz %s created with %d questions", q.ID, q.QuestionCount())
	return q, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*QuizWithStatsDTO, error) {
	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	return &QuizWithStatsDTO{
		Quiz:          q,
		QuestionCount: q.QuestionCount(),
		TotalPoints:   q.TotalPoints(),
	}, nil
}

func (s *quizService) ListByCourse(ctx context.Context, courseID string) ([]*Quiz, error) {
	return s.repo.ListByCourse(courseID)
}

func (s *quizService) UpdateQuiz(ctx context.Context, quizID string, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	if dto.Title != nil {
		q.Title = *dto.Title
	}
	if dto.Description != nil {
		q.Description = *dto.Description
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}
	if dto.AvailableFrom != nil {
		q.AvailableFrom = dto.AvailableFrom
	}
	if dto.AvailableUntil != nil {
		q.AvailableUntil = dto.AvailableUntil
	}
	if dto.AttemptsAllowed != nil {
		q.AttemptsAllowed = *dto.AttemptsAllowed
	}
	if dto.PassingScore != nil {
		q.PassingScore = *dto.PassingScore
	}

	if err := s.repo.Update(q); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID string) error {
	log := config.WithContext(ctx)

	if err := s.repo.Delete(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}
	return nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID string, dto AddQuestionDTO) (*QuizQuestion, error) {
	log := config.WithContext(ctx)

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	question, err := buildQuestion(q.ID, dto)
	if err != nil {
		return nil, err
	}
	if question.OrderIndex == 0 {
		question.OrderIndex = q.QuestionCount()
	}

	if err := s.repo.AddQuestions([]*QuizQuestion{question}); err != nil {
		log.WithError(err).Error("Failed to add question")
		return nil, err
	}
	return question, nil
}

func (s *quizService) RemoveQuestion(ctx context.Context, questionID string) error {
	if err := s.repo.DeleteQuestion(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *quizService) CheckEligibility(ctx context.Context, quizID string, userID uuid.UUID) (*EligibilityResponse, error) {
	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	allowed, reason, err := s.evaluator.CanAttempt(ctx, q, userID)
	if err != nil {
		return nil, err
	}

	return &EligibilityResponse{Allowed: allowed, Reason: reason}, nil
}

// SubmitAttempt runs the eligibility evaluator, grades the submitted answers
// against the stored questions and persists the attempt. The score is a
// percentage of the quiz's total points.
func (s *quizService) SubmitAttempt(ctx context.Context, quizID string, userID uuid.UUID, dto SubmitAttemptDTO) (*AttemptResponse, error) {
	log := config.WithContext(ctx)

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	allowed, reason, err := s.evaluator.CanAttempt(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &EligibilityError{Reason: reason}
	}

	earned := 0
	correct := 0
	for _, question := range q.Questions {
		answer, ok := dto.Answers[question.ID.String()]
		if !ok {
			continue
		}
		if answersMatch(answer, question.CorrectAnswer) {
			points := question.Points
			if points <= 0 {
				points = defaultQuestionPoints
			}
			earned += points
			correct++
		}
	}

	total := q.TotalPoints()
	score := 0
	if total > 0 {
		score = earned * 100 / total
	}

	answersJSON, err := json.Marshal(dto.Answers)
	if err != nil {
		return nil, err
	}

	attempt := &QuizAttempt{
		ID:      uuid.New(),
		QuizID:  q.ID,
		UserID:  userID,
		Answers: datatypes.JSON(answersJSON),
		Score:   score,
		Passed:  score >= q.PassingScore,
	}

	if err := s.repo.CreateAttempt(attempt); err != nil {
		log.WithError(err).Error("Failed to persist quiz attempt")
		return nil, err
	}

	log.Infof("User %s scored %d on quiz %s", userID, score, q.ID)
	return &AttemptResponse{
		Attempt:       attempt,
		TotalPoints:   total,
		EarnedPoints:  earned,
		QuestionCount: q.QuestionCount(),
		CorrectCount:  correct,
	}, nil
}

func (s *quizService) ListAttempts(ctx context.Context, userID uuid.UUID) ([]*QuizAttempt, error) {
	return s.repo.ListAttemptsByUser(userID)
}

func buildQuestion(quizID uuid.UUID, dto AddQuestionDTO) (*QuizQuestion, error) {
	qType := dto.Type
	if qType == "" {
		qType = "multiple_choice"
	}

	var options datatypes.JSON
	if len(dto.Options) > 0 {
		b, err := json.Marshal(dto.Options)
		if err != nil {
			return nil, err
		}
		options = datatypes.JSON(b)
	}

	points := dto.Points
	if points <= 0 {
		points = defaultQuestionPoints
	}

	return &QuizQuestion{
		ID:            uuid.New(),
		QuizID:        quizID,
		Content:       dto.Content,
		Type:          qType,
		Options:       options,
		CorrectAnswer: dto.CorrectAnswer,
		Explanation:   dto.Explanation,
		Points:        points,
		OrderIndex:    dto.OrderIndex,
	}, nil
}

func answersMatch(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}
