package dto

import "time"

// JoinQuizRequest starts an attempt for the quiz behind a join code.
type JoinQuizRequest struct {
	JoinCode string `json:"join_code"`
}

// StartAttemptResponse carries everything the quiz-taking view needs.
type StartAttemptResponse struct {
	SessionID        string             `json:"session_id"`
	AttemptID        string             `json:"attempt_id"`
	Quiz             QuizResponse       `json:"quiz"`
	Questions        []QuestionResponse `json:"questions"`
	RemainingSeconds int                `json:"remaining_seconds"`
}

// RecordAnswerRequest stores/overwrites the answer for one question.
// Answers is reserved for future multi-select questions.
type RecordAnswerRequest struct {
	QuestionID string   `json:"question_id"`
	Answer     string   `json:"answer"`
	Answers    []string `json:"answers,omitempty"`
}

// AdvanceRequest moves the current question index by Delta.
type AdvanceRequest struct {
	Delta int `json:"delta"`
}

// SessionStateResponse is the observable state of a running session.
type SessionStateResponse struct {
	SessionID        string `json:"session_id"`
	AttemptID        string `json:"attempt_id"`
	CurrentIndex     int    `json:"current_index"`
	RemainingSeconds int    `json:"remaining_seconds"`
	AnsweredCount    int    `json:"answered_count"`
}

// AnswerRecordResponse is one graded outcome in the results view.
type AnswerRecordResponse struct {
	QuestionID   string `json:"question_id"`
	Submitted    string `json:"submitted_answer,omitempty"`
	IsCorrect    bool   `json:"is_correct"`
	PointsEarned int    `json:"points_earned"`
}

// AttemptResultResponse is the persisted outcome of one attempt.
type AttemptResultResponse struct {
	AttemptID   string                 `json:"attempt_id"`
	QuizID      string                 `json:"quiz_id"`
	Status      string                 `json:"status"`
	Score       int                    `json:"score"`
	TotalPoints int                    `json:"total_points"`
	StartedAt   time.Time              `json:"started_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Answers     []AnswerRecordResponse `json:"answers"`
}
