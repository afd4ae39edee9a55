package domain

import (
	"context"
)

// QuestionBankRepository provides read-only access to a quiz's
// questions and options. The store is expected to return questions in
// ascending order-index with options nested in their display order.
type QuestionBankRepository interface {
	// GetQuestions returns the ordered questions of a quiz, including
	// the answer key. Callers expose only the display fields.
	GetQuestions(ctx context.Context, quizID string) ([]Question, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	GetQuizByJoinCode(ctx context.Context, code string) (*Quiz, error)
	GetQuizzesByTeacher(ctx context.Context, teacherID string) ([]Quiz, error)
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	UpdateQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, id string) error
	SaveQuestion(ctx context.Context, question *Question) error
}

// AttemptRepository defines the interface for attempt persistence
type AttemptRepository interface {
	// CreateAttempt inserts a new attempt row and returns nothing; the
	// attempt's ID must already be assigned by the caller.
	CreateAttempt(ctx context.Context, attempt *Attempt) error
	GetAttemptByID(ctx context.Context, id string) (*Attempt, error)
	// UpdateAttemptScore records the final score and total points of a
	// completed attempt. It is the last of the three submission writes.
	UpdateAttemptScore(ctx context.Context, attemptID string, score, totalPoints int) error
	// GetQuizSummary aggregates completed attempts of a quiz.
	GetQuizSummary(ctx context.Context, quizID string) (*QuizSummary, error)
}

// AnswerRecordRepository persists graded answer records
type AnswerRecordRepository interface {
	// CreateAnswerRecords bulk-inserts the graded outcomes of one attempt.
	CreateAnswerRecords(ctx context.Context, records []AnswerRecord) error
	GetAnswerRecordsByAttempt(ctx context.Context, attemptID string) ([]AnswerRecord, error)
}

// QuizSummary is the arithmetic aggregation over a quiz's completed attempts.
type QuizSummary struct {
	QuizID        string
	AttemptCount  int
	AverageScore  float64
	BestScore     int
	TotalPossible int
}

// TransactionManager runs a function within a store transaction. The
// transaction travels in the context so repositories participate
// transparently.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
