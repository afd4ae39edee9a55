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

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	var completedAt *time.Time
	if m.CompletedAt.Valid {
		completedAt = &m.CompletedAt.Time
	}
	return &domain.Attempt{
		ID:          m.ID,
		QuizID:      m.QuizID,
		StudentID:   m.StudentID,
		Status:      domain.AttemptStatus(m.Status),
		StartedAt:   m.StartedAt,
		CompletedAt: completedAt,
		Score:       util.NullInt64ToIntPtr(m.Score),
		TotalPoints: util.NullInt64ToIntPtr(m.TotalPoints),
	}
}

func fromDomainAttempt(a *domain.Attempt) *models.Attempt {
	if a == nil {
		return nil
	}
	var completedAt sql.NullTime
	if a.CompletedAt != nil {
		completedAt = util.TimeToNullTime(*a.CompletedAt)
	}
	return &models.Attempt{
		ID:          a.ID,
		QuizID:      a.QuizID,
		StudentID:   a.StudentID,
		Status:      string(a.Status),
		StartedAt:   a.StartedAt,
		CompletedAt: completedAt,
		Score:       util.IntPtrToNullInt64(a.Score),
		TotalPoints: util.IntPtrToNullInt64(a.TotalPoints),
	}
}

// CreateAttempt inserts a new attempt row.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainAttempt(attempt)
	if m.StartedAt.IsZero() {
		m.StartedAt = time.Now()
	}

	query := `INSERT INTO attempts (id, quiz_id, student_id, status, started_at, completed_at, score, total_points)
	          VALUES (:id, :quiz_id, :student_id, :status, :started_at, :completed_at, :score, :total_points)`
	if _, err := exec.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

// GetAttemptByID retrieves an attempt by its ID.
func (r *sqlxAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.Attempt
	query := `SELECT id, quiz_id, student_id, status, started_at, completed_at, score, total_points
	          FROM attempts WHERE id = $1`
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt by id: %w", err)
	}
	return toDomainAttempt(&m), nil
}

// UpdateAttemptScore records the summed score and total points of a
// completed attempt. It is the final write of the submission sequence.
func (r *sqlxAttemptRepository) UpdateAttemptScore(ctx context.Context, attemptID string, score, totalPoints int) error {
	exec := GetExecutor(ctx, r.db)

	query := `UPDATE attempts SET score = $1, total_points = $2 WHERE id = $3 AND status = $4`
	res, err := exec.ExecContext(ctx, query, score, totalPoints, attemptID, string(domain.AttemptStatusCompleted))
	if err != nil {
		return fmt.Errorf("failed to update attempt score: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no completed attempt to update: %s", attemptID)
	}
	return nil
}

// GetQuizSummary aggregates completed attempts of a quiz in SQL.
func (r *sqlxAttemptRepository) GetQuizSummary(ctx context.Context, quizID string) (*domain.QuizSummary, error) {
	exec := GetExecutor(ctx, r.db)

	var row struct {
		AttemptCount  int             `db:"attempt_count"`
		AverageScore  sql.NullFloat64 `db:"average_score"`
		BestScore     sql.NullInt64   `db:"best_score"`
		TotalPossible sql.NullInt64   `db:"total_possible"`
	}
	query := `SELECT COUNT(*) AS attempt_count,
	                 AVG(score) AS average_score,
	                 MAX(score) AS best_score,
	                 MAX(total_points) AS total_possible
	          FROM attempts
	          WHERE quiz_id = $1 AND status = $2 AND score IS NOT NULL`
	if err := exec.GetContext(ctx, &row, query, quizID, string(domain.AttemptStatusCompleted)); err != nil {
		return nil, fmt.Errorf("failed to get quiz summary: %w", err)
	}

	return &domain.QuizSummary{
		QuizID:        quizID,
		AttemptCount:  row.AttemptCount,
		AverageScore:  row.AverageScore.Float64,
		BestScore:     int(row.BestScore.Int64),
		TotalPossible: int(row.TotalPossible.Int64),
	}, nil
}
