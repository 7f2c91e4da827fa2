package aitutor

import (
	"context"
	"encoding/json"

	"github.com/edustack-io/edustack/internal/config"
	"github.com/edustack-io/edustack/internal/llm"
	"github.com/edustack-io/edustack/internal/quiz"
	"github.com/edustack-io/edustack/internal/user"
	"github.com/google/uuid"
)

type Service interface {
	Recommend(ctx context.Context, userID uuid.UUID, req RecommendRequest) (map[string]interface{}, error)
	GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) (*GenerateQuestionsResponse, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
	Analyze(ctx context.Context, userID uuid.UUID, req AnalyzeRequest) (map[string]interface{}, error)
}

type service struct {
	client  *llm.Client
	quizzes quiz.QuizService
	users   user.UserRepository
}

func NewService(client *llm.Client, quizzes quiz.QuizService, users user.UserRepository) Service {
	return &service{
		client:  client,
		quizzes: quizzes,
		users:   users,
	}
}

func (s *service) Recommend(ctx context.Context, userID uuid.UUID, req RecommendRequest) (map[string]interface{}, error) {
	profile := req.Profile
	if profile == nil {
		loaded, err := s.loadProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	history := req.History
	if len(history) == 0 {
		derived, err := s.performanceHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		history = derived
	}

	return s.client.RecommendLearning(ctx, *profile, history)
}

func (s *service) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) (*GenerateQuestionsResponse, error) {
	log := config.WithContext(ctx)

	questions, err := s.client.GenerateQuizQuestions(ctx, llm.QuizParams{
		Topic:         req.Topic,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
		QuestionTypes: req.QuestionTypes,
	})
	if err != nil {
		return nil, err
	}

	resp := &GenerateQuestionsResponse{Questions: questions}

	if req.QuizID != nil {
		for _, q := range questions {
			explanation := q.Explanation
			_, err := s.quizzes.AddQuestion(ctx, req.QuizID.String(), quiz.AddQuestionDTO{
				Content:       q.Question,
				Type:          q.Type,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   &explanation,
			})
			if err != nil {
				log.WithError(err).Warnf("Failed to persist generated question into quiz %s", req.QuizID)
				continue
			}
			resp.Persisted++
		}
	}

	return resp, nil
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (string, error) {
	return s.client.ChatWithTutor(ctx, req.Message, req.History, req.Context)
}

func (s *service) Analyze(ctx context.Context, userID uuid.UUID, req AnalyzeRequest) (map[string]interface{}, error) {
	records := req.Records
	if len(records) == 0 {
		derived, err := s.performanceHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		records = derived
	}

	return s.client.AnalyzeLearningPattern(ctx, records)
}

func (s *service) loadProfile(ctx context.Context, userID uuid.UUID) (*llm.StudentProfile, error) {
	u, err := s.users.GetByID(userID.String())
	if err != nil {
		return nil, err
	}

	profile := &llm.StudentProfile{}
	if u == nil {
		return profile, nil
	}

	profile.LearningStyle = u.LearningStyle
	profile.GradeLevel = u.GradeLevel
	profile.Strengths = decodeStrings(u.Strengths)
	profile.Weaknesses = decodeStrings(u.Weaknesses)
	profile.Goals = decodeStrings(u.Goals)
	return profile, nil
}

// performanceHistory maps the learner's stored quiz attempts to the records
// shape the prompts embed, newest first as returned by the repository.
func (s *service) performanceHistory(ctx context.Context, userID uuid.UUID) ([]llm.PerformanceRecord, error) {
	attempts, err := s.quizzes.ListAttempts(ctx, userID)
	if err != nil {
		return nil, err
	}

	titles := map[uuid.UUID]string{}
	records := make([]llm.PerformanceRecord, 0, len(attempts))
	for _, a := range attempts {
		title, ok := titles[a.QuizID]
		if !ok {
			if q, err := s.quizzes.GetQuiz(ctx, a.QuizID.String()); err == nil && q != nil {
				title = q.Quiz.Title
			}
			titles[a.QuizID] = title
		}

		records = append(records, llm.PerformanceRecord{
			Topic:       title,
			Score:       a.Score,
			MaxScore:    100,
			Passed:      a.Passed,
			CompletedAt: a.SubmittedAt,
		})
	}
	return records, nil
}

func decodeStrings(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
