// Package models holds the database representations of the domain
// entities, with sql.Null types for nullable columns.
package models

import (
	"database/sql"
	"time"
)

// Quiz mirrors the quizzes table.
type Quiz struct {
	ID              string         `db:"id"`
	TeacherID       string         `db:"teacher_id"`
	Title           string         `db:"title"`
	Description     sql.NullString `db:"description"`
	DurationSeconds int            `db:"duration_seconds"`
	JoinCode        sql.NullString `db:"join_code"`
	Published       bool           `db:"published"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       sql.NullTime   `db:"deleted_at"`
}

// Question mirrors the questions table.
type Question struct {
	ID            string    `db:"id"`
	QuizID        string    `db:"quiz_id"`
	Text          string    `db:"question_text"`
	QuestionType  string    `db:"question_type"`
	CorrectAnswer string    `db:"correct_answer"`
	Points        int       `db:"points"`
	OrderIndex    int       `db:"order_index"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Option mirrors the question_options table.
type Option struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	Text       string `db:"option_text"`
	OrderIndex int    `db:"order_index"`
}

// Attempt mirrors the attempts table.
type Attempt struct {
	ID          string        `db:"id"`
	QuizID      string        `db:"quiz_id"`
	StudentID   string        `db:"student_id"`
	Status      string        `db:"status"`
	StartedAt   time.Time     `db:"started_at"`
	CompletedAt sql.NullTime  `db:"completed_at"`
	Score       sql.NullInt64 `db:"score"`
	TotalPoints sql.NullInt64 `db:"total_points"`
}

// AnswerRecord mirrors the answer_records table.
type AnswerRecord struct {
	ID           string         `db:"id"`
	AttemptID    string         `db:"attempt_id"`
	QuestionID   string         `db:"question_id"`
	Submitted    sql.NullString `db:"submitted_answer"`
	IsCorrect    bool           `db:"is_correct"`
	PointsEarned int            `db:"points_earned"`
	CreatedAt    time.Time      `db:"created_at"`
}
