package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const recommendSystemPrompt = `You are an expert tutor who designs personalized learning plans. Always answer with pure, valid JSON and no text outside the JSON.`

const quizSystemPrompt = `You are a generator of educational quiz questions. Every question must have a single correct answer and a brief explanation. Always answer with a pure, valid JSON array and no text outside the JSON.`

const analysisSystemPrompt = `You are an educational data analyst. You study a learner's performance history and describe patterns in it. Always answer with pure, valid JSON and no text outside the JSON.`

func buildRecommendPrompt(profile StudentProfile, history []PerformanceRecord) string {
	historyJSON, _ := json.Marshal(history)

	return fmt.Sprintf(
		`Create a personalized learning recommendation for this student.

Learning style: %s
Grade level: %s
Strengths: %s
Weaknesses: %s
Goals: %s

Recent performance history (JSON):
%s

Respond with a JSON object containing exactly these keys:
"recommended_topics" (array of topic names),
"suggested_resources" (array of resource descriptions),
"study_schedule" (object mapping days to activities),
"improvement_areas" (array of areas needing work),
"motivational_tips" (array of short encouragements).`,
		profile.LearningStyle,
		profile.GradeLevel,
		strings.Join(profile.Strengths, ", "),
		strings.Join(profile.Weaknesses, ", "),
		strings.Join(profile.Goals, ", "),
		historyJSON,
	)
}

func buildQuizPrompt(params QuizParams) string {
	return fmt.Sprintf(
		`Generate %d quiz questions about "%s" with difficulty "%s".
Allowed question types: %s.

Respond with a JSON array where each element has the keys:
"question", "type", "options" (array, empty for non multiple-choice),
"correct_answer", "explanation", "difficulty" and "topic".
For multiple-choice questions provide 4 plausible options including the
correct one, and do not make the correct answer obvious.`,
		params.QuestionCount,
		params.Topic,
		params.Difficulty,
		strings.Join(params.QuestionTypes, ", "),
	)
}

func buildTutorSystemPrompt(sc StudentContext) string {
	return fmt.Sprintf(
		`You are a personal tutor for a student with the following profile.

Learning style: %s
Subjects: %s
Strengths: %s
Weaknesses: %s

Follow these guidelines:
1. Be encouraging and positive.
2. Adapt your explanations to the student's learning style.
3. Use concrete examples.
4. Ask clarifying questions when the student's request is ambiguous.
5. Keep answers concise.`,
		sc.LearningStyle,
		strings.Join(sc.Subjects, ", "),
		strings.Join(sc.Strengths, ", "),
		strings.Join(sc.Weaknesses, ", "),
	)
}

func buildAnalysisPrompt(records []PerformanceRecord) string {
	recordsJSON, _ := json.Marshal(records)

	return fmt.Sprintf(
		`Analyze this learner's performance records (JSON, oldest first):
%s

Respond with a JSON object containing exactly these keys:
"learning_patterns" (array of observed patterns),
"strengths" (array),
"weaknesses" (array),
"recommendations" (array),
"progress_trend" ("improving", "stable" or "declining"),
"confidence_score" (number between 0 and 100).`,
		recordsJSON,
	)
}
