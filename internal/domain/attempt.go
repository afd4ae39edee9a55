package domain

import (
	"time"
)

// AttemptStatus enumerates the lifecycle states of an attempt.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusCompleted  AttemptStatus = "completed"
	// AttemptStatusAbandoned is terminal and only ever set by an
	// external cleanup process, never by this service.
	AttemptStatusAbandoned AttemptStatus = "abandoned"
)

// Attempt represents one student's single run through one quiz.
// It is mutated exactly once, at submission, and never after the
// status reaches completed.
type Attempt struct {
	ID          string
	QuizID      string
	StudentID   string
	Status      AttemptStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Score       *int
	TotalPoints *int
}

// NewAttempt creates a new in-progress Attempt
func NewAttempt(quizID, studentID string) *Attempt {
	return &Attempt{
		QuizID:    quizID,
		StudentID: studentID,
		Status:    AttemptStatusInProgress,
		StartedAt: time.Now(),
	}
}

// Validate validates the attempt
func (a *Attempt) Validate() error {
	if a.QuizID == "" {
		return NewInvalidInputError("quiz_id is required")
	}
	if a.StudentID == "" {
		return NewInvalidInputError("student_id is required")
	}
	return nil
}

// IsCompleted reports whether the attempt has reached its terminal
// completed state.
func (a *Attempt) IsCompleted() bool {
	return a.Status == AttemptStatusCompleted
}

// Complete marks the attempt completed with its final score. It is the
// only legal transition out of in_progress performed by this service.
func (a *Attempt) Complete(score, totalPoints int, at time.Time) error {
	if a.IsCompleted() {
		return NewAttemptCompletedError(a.ID)
	}
	a.Status = AttemptStatusCompleted
	a.CompletedAt = &at
	a.Score = &score
	a.TotalPoints = &totalPoints
	return nil
}

// AnswerRecord is the graded, persisted outcome of one student's
// response to one question within one attempt. Records are created in
// bulk at submission time and are immutable thereafter.
type AnswerRecord struct {
	ID           string
	AttemptID    string
	QuestionID   string
	Submitted    string // empty if the question was never answered
	IsCorrect    bool
	PointsEarned int
	CreatedAt    time.Time
}

// Validate validates the answer record
func (r *AnswerRecord) Validate() error {
	if r.AttemptID == "" {
		return NewInvalidInputError("attempt_id is required")
	}
	if r.QuestionID == "" {
		return NewInvalidInputError("question_id is required")
	}
	return nil
}
