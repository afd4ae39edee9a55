package domain

import (
	"time"
)

// QuestionType tags the shape of a question and how it is graded.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer:
		return true
	}
	return false
}

// Quiz represents a teacher-authored quiz
type Quiz struct {
	ID              string
	TeacherID       string
	Title           string
	Description     string
	DurationSeconds int
	JoinCode        string // empty until published
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(teacherID, title, description string, durationSeconds int) *Quiz {
	now := time.Now()
	return &Quiz{
		TeacherID:       teacherID,
		Title:           title,
		Description:     description,
		DurationSeconds: durationSeconds,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.TeacherID == "" {
		return NewInvalidInputError("teacher_id is required")
	}
	if q.Title == "" {
		return NewInvalidInputError("title is required")
	}
	if q.DurationSeconds <= 0 {
		return NewInvalidInputError("duration_seconds must be positive")
	}
	return nil
}

// Option is one selectable choice of a multiple_choice question.
type Option struct {
	ID         string
	QuestionID string
	Text       string
	OrderIndex int
}

// Question represents one question of a quiz. Options is populated for
// multiple_choice only; CorrectAnswer holds the option ID for
// multiple_choice, "true"/"false" for true_false and the expected text
// for short_answer.
type Question struct {
	ID            string
	QuizID        string
	Text          string
	Type          QuestionType
	Options       []Option
	CorrectAnswer string
	Points        int
	OrderIndex    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(quizID, text string, qType QuestionType, correctAnswer string, points, orderIndex int) *Question {
	now := time.Now()
	return &Question{
		QuizID:        quizID,
		Text:          text,
		Type:          qType,
		CorrectAnswer: correctAnswer,
		Points:        points,
		OrderIndex:    orderIndex,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PointValue returns the question's point value, defaulting to 1 when unset.
func (q *Question) PointValue() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// HasOption reports whether optionID identifies one of the question's options.
func (q *Question) HasOption(optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.QuizID == "" {
		return NewInvalidInputError("quiz_id is required")
	}
	if q.Text == "" {
		return NewInvalidInputError("text is required")
	}
	if !q.Type.IsValid() {
		return NewInvalidInputError("unknown question type: " + string(q.Type))
	}
	if q.Points < 0 {
		return NewInvalidInputError("points must not be negative")
	}
	switch q.Type {
	case QuestionTypeMultipleChoice:
		if len(q.Options) == 0 {
			return NewInvalidInputError("multiple_choice question requires options")
		}
		if !q.HasOption(q.CorrectAnswer) {
			return NewInvalidInputError("correct_answer must match an option ID")
		}
	case QuestionTypeTrueFalse:
		if q.CorrectAnswer != "true" && q.CorrectAnswer != "false" {
			return NewInvalidInputError(`true_false correct_answer must be "true" or "false"`)
		}
	case QuestionTypeShortAnswer:
		if q.CorrectAnswer == "" {
			return NewInvalidInputError("short_answer correct_answer is required")
		}
	}
	return nil
}
