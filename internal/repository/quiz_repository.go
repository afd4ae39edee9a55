package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/repository/models"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.Quiz{
		ID:              m.ID,
		TeacherID:       m.TeacherID,
		Title:           m.Title,
		Description:     m.Description.String,
		DurationSeconds: m.DurationSeconds,
		JoinCode:        m.JoinCode.String,
		Published:       m.Published,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	var deletedAt sql.NullTime
	if q.DeletedAt != nil {
		deletedAt = util.TimeToNullTime(*q.DeletedAt)
	}
	return &models.Quiz{
		ID:              q.ID,
		TeacherID:       q.TeacherID,
		Title:           q.Title,
		Description:     util.StringToNullString(q.Description),
		DurationSeconds: q.DurationSeconds,
		JoinCode:        util.StringToNullString(q.JoinCode),
		Published:       q.Published,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// GetQuizByID retrieves a quiz by its ID. Soft-deleted quizzes are not returned.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.Quiz
	query := `SELECT id, teacher_id, title, description, duration_seconds, join_code, published, created_at, updated_at, deleted_at
	          FROM quizzes WHERE id = $1 AND deleted_at IS NULL`
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return toDomainQuiz(&m), nil
}

// GetQuizByJoinCode resolves a join code to its published quiz.
func (r *sqlxQuizRepository) GetQuizByJoinCode(ctx context.Context, code string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.Quiz
	query := `SELECT id, teacher_id, title, description, duration_seconds, join_code, published, created_at, updated_at, deleted_at
	          FROM quizzes WHERE join_code = $1 AND published = TRUE AND deleted_at IS NULL`
	if err := exec.GetContext(ctx, &m, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by join code: %w", err)
	}
	return toDomainQuiz(&m), nil
}

// GetQuizzesByTeacher lists a teacher's quizzes, newest first.
func (r *sqlxQuizRepository) GetQuizzesByTeacher(ctx context.Context, teacherID string) ([]domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)

	var ms []models.Quiz
	query := `SELECT id, teacher_id, title, description, duration_seconds, join_code, published, created_at, updated_at, deleted_at
	          FROM quizzes WHERE teacher_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	if err := exec.SelectContext(ctx, &ms, query, teacherID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for teacher: %w", err)
	}

	quizzes := make([]domain.Quiz, len(ms))
	for i := range ms {
		quizzes[i] = *toDomainQuiz(&ms[i])
	}
	return quizzes, nil
}

// SaveQuiz inserts a new quiz row.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainQuiz(quiz)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	query := `INSERT INTO quizzes (id, teacher_id, title, description, duration_seconds, join_code, published, created_at, updated_at)
	          VALUES (:id, :teacher_id, :title, :description, :duration_seconds, :join_code, :published, :created_at, :updated_at)`
	if _, err := exec.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// UpdateQuiz updates an existing quiz row.
func (r *sqlxQuizRepository) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainQuiz(quiz)
	m.UpdatedAt = time.Now()

	query := `UPDATE quizzes
	          SET title = :title, description = :description, duration_seconds = :duration_seconds,
	              join_code = :join_code, published = :published, updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`
	if _, err := exec.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

// DeleteQuiz soft-deletes a quiz.
func (r *sqlxQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, r.db)

	query := `UPDATE quizzes SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	if _, err := exec.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	return nil
}

// SaveQuestion inserts a question and its options.
func (r *sqlxQuizRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, r.db)

	now := time.Now()
	m := models.Question{
		ID:            question.ID,
		QuizID:        question.QuizID,
		Text:          question.Text,
		QuestionType:  string(question.Type),
		CorrectAnswer: question.CorrectAnswer,
		Points:        question.PointValue(),
		OrderIndex:    question.OrderIndex,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	query := `INSERT INTO questions (id, quiz_id, question_text, question_type, correct_answer, points, order_index, created_at, updated_at)
	          VALUES (:id, :quiz_id, :question_text, :question_type, :correct_answer, :points, :order_index, :created_at, :updated_at)`
	if _, err := exec.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}

	for _, opt := range question.Options {
		om := models.Option{
			ID:         opt.ID,
			QuestionID: question.ID,
			Text:       opt.Text,
			OrderIndex: opt.OrderIndex,
		}
		optQuery := `INSERT INTO question_options (id, question_id, option_text, order_index)
		             VALUES (:id, :question_id, :option_text, :order_index)`
		if _, err := exec.NamedExecContext(ctx, optQuery, om); err != nil {
			return fmt.Errorf("failed to save question option: %w", err)
		}
	}
	return nil
}
