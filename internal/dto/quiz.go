package dto

import "time"

// OptionInput is one authored choice of a multiple_choice question.
type OptionInput struct {
	Text string `json:"text"`
}

// QuestionInput is one authored question. For multiple_choice,
// CorrectOptionIndex selects the correct option by position (option IDs
// are generated server-side); for the other types CorrectAnswer holds
// the answer token.
type QuestionInput struct {
	Text               string        `json:"text"`
	Type               string        `json:"type"`
	Options            []OptionInput `json:"options,omitempty"`
	CorrectOptionIndex *int          `json:"correct_option_index,omitempty"`
	CorrectAnswer      string        `json:"correct_answer,omitempty"`
	Points             int           `json:"points,omitempty"`
}

// CreateQuizRequest is the request body for authoring a quiz.
type CreateQuizRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	DurationSeconds int             `json:"duration_seconds"`
	Questions       []QuestionInput `json:"questions"`
}

// UpdateQuizRequest is the request body for updating quiz metadata.
type UpdateQuizRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
}

// QuizResponse represents a quiz in the API response.
type QuizResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	JoinCode        string    `json:"join_code,omitempty"`
	Published       bool      `json:"published"`
	QuestionCount   int       `json:"question_count,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OptionResponse is a selectable choice as shown to students.
type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse is a question as shown to students. The answer key
// is never included.
type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Type    string           `json:"type"`
	Options []OptionResponse `json:"options,omitempty"`
	Points  int              `json:"points"`
}

// QuizSummaryResponse aggregates a quiz's completed attempts.
type QuizSummaryResponse struct {
	QuizID        string  `json:"quiz_id"`
	AttemptCount  int     `json:"attempt_count"`
	AverageScore  float64 `json:"average_score"`
	BestScore     int     `json:"best_score"`
	TotalPossible int     `json:"total_possible"`
}

// ErrorResponse represents an error in the API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
