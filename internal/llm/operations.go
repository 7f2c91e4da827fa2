package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/edustack-io/edustack/internal/config"
)

// Per-operation defaults, all overridable through Options.
const (
	recommendModel     = "openai/gpt-4o-mini"
	recommendMaxTokens = 1000
	recommendTemp      = 0.7

	quizGenModel     = "openai/gpt-4o"
	quizGenMaxTokens = 1500
	quizGenTemp      = 0.5

	tutorModel     = "openai/gpt-4o-mini"
	tutorMaxTokens = 800
	tutorTemp      = 0.7

	analysisModel     = "openai/gpt-4o-mini"
	analysisMaxTokens = 1000
	analysisTemp      = 0.3
)

// tutorFallbackReply is returned when the provider sends no usable content.
const tutorFallbackReply = "I'm sorry, I couldn't come up with an answer just now. Please try asking again."

type StudentProfile struct {
	LearningStyle string   `json:"learning_style"`
	GradeLevel    string   `json:"grade_level"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Goals         []string `json:"goals"`
}

type PerformanceRecord struct {
	Topic       string    `json:"topic"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"max_score,omitempty"`
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completed_at"`
}

type StudentContext struct {
	LearningStyle string   `json:"learning_style"`
	Subjects      []string `json:"subjects"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
}

type QuizParams struct {
	Topic         string
	Difficulty    string
	QuestionCount int
	QuestionTypes []string
}

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
}

// RecommendLearning asks the model for a personalized study plan. When the
// reply is not the expected JSON object, the literal text is returned under
// "raw_response" instead of failing.
func (c *Client) RecommendLearning(ctx context.Context, profile StudentProfile, history []PerformanceRecord, opts ...Option) (map[string]interface{}, error) {
	req := CompletionRequest{
		Model: recommendModel,
		Messages: []Message{
			{Role: RoleSystem, Content: recommendSystemPrompt},
			{Role: RoleUser, Content: buildRecommendPrompt(profile, history)},
		},
	}
	maxTokens := recommendMaxTokens
	temperature := recommendTemp
	req.MaxTokens = &maxTokens
	req.Temperature = &temperature
	for _, opt := range opts {
		opt(&req)
	}

	result, err := c.CompleteChat(ctx, req)
	if err != nil {
		return nil, err
	}

	content := result.FirstContent()
	var recommendation map[string]interface{}
	if err := json.Unmarshal([]byte(stripFences(content)), &recommendation); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Recommendation reply was not valid JSON, returning raw text")
		return map[string]interface{}{"raw_response": content}, nil
	}
	if _, ok := recommendation["recommended_topics"]; !ok {
		return map[string]interface{}{"raw_response": content}, nil
	}
	return recommendation, nil
}

// GenerateQuizQuestions asks the model for quiz questions. Unparsable output
// degrades to an empty slice, never an error.
func (c *Client) GenerateQuizQuestions(ctx context.Context, params QuizParams, opts ...Option) ([]GeneratedQuestion, error) {
	if params.QuestionCount <= 0 {
		params.QuestionCount = 5
	}
	if len(params.QuestionTypes) == 0 {
		params.QuestionTypes = []string{"multiple_choice", "true_false", "short_answer"}
	}

	req := CompletionRequest{
		Model: quizGenModel,
		Messages: []Message{
			{Role: RoleSystem, Content: quizSystemPrompt},
			{Role: RoleUser, Content: buildQuizPrompt(params)},
		},
	}
	maxTokens := quizGenMaxTokens
	temperature := quizGenTemp
	req.MaxTokens = &maxTokens
	req.Temperature = &temperature
	for _, opt := range opts {
		opt(&req)
	}

	result, err := c.CompleteChat(ctx, req)
	if err != nil {
		return nil, err
	}

	content := stripFences(result.FirstContent())
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(content), &questions); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Quiz generation reply was not valid JSON, returning no questions")
		return []GeneratedQuestion{}, nil
	}
	return questions, nil
}

// ChatWithTutor sends the conversation so far plus the current message and
// returns the model's free-text reply. The caller-supplied history is never
// mutated.
func (c *Client) ChatWithTutor(ctx context.Context, message string, history []Message, studentCtx StudentContext, opts ...Option) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: buildTutorSystemPrompt(studentCtx)})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: message})

	req := CompletionRequest{
		Model:    tutorModel,
		Messages: messages,
	}
	maxTokens := tutorMaxTokens
	temperature := tutorTemp
	req.MaxTokens = &maxTokens
	req.Temperature = &temperature
	for _, opt := range opts {
		opt(&req)
	}

	result, err := c.CompleteChat(ctx, req)
	if err != nil {
		return "", err
	}

	content := result.FirstContent()
	if strings.TrimSpace(content) == "" {
		return tutorFallbackReply, nil
	}
	return content, nil
}

// AnalyzeLearningPattern asks the model to analyze performance records. When
// the reply is not the expected JSON object, the literal text is returned
// under "raw_analysis" instead of failing.
func (c *Client) AnalyzeLearningPattern(ctx context.Context, records []PerformanceRecord, opts ...Option) (map[string]interface{}, error) {
	req := CompletionRequest{
		Model: analysisModel,
		Messages: []Message{
			{Role: RoleSystem, Content: analysisSystemPrompt},
			{Role: RoleUser, Content: buildAnalysisPrompt(records)},
		},
	}
	maxTokens := analysisMaxTokens
	temperature := analysisTemp
	req.MaxTokens = &maxTokens
	req.Temperature = &temperature
	for _, opt := range opts {
		opt(&req)
	}

	result, err := c.CompleteChat(ctx, req)
	if err != nil {
		return nil, err
	}

	content := result.FirstContent()
	var analysis map[string]interface{}
	if err := json.Unmarshal([]byte(stripFences(content)), &analysis); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Analysis reply was not valid JSON, returning raw text")
		return map[string]interface{}{"raw_analysis": content}, nil
	}
	if _, ok := analysis["learning_patterns"]; !ok {
		return map[string]interface{}{"raw_analysis": content}, nil
	}
	return analysis, nil
}

// stripFences removes the markdown code fences models often wrap JSON in.
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(strings.Trim(clean, "`"))
}
