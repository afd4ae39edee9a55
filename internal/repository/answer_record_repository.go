package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/repository/models"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAnswerRecordRepository implements domain.AnswerRecordRepository using sqlx.
type sqlxAnswerRecordRepository struct {
	db *sqlx.DB
}

// NewSQLXAnswerRecordRepository creates a new instance of sqlxAnswerRecordRepository.
func NewSQLXAnswerRecordRepository(db *sqlx.DB) domain.AnswerRecordRepository {
	return &sqlxAnswerRecordRepository{db: db}
}

func fromDomainAnswerRecord(r *domain.AnswerRecord) models.AnswerRecord {
	return models.AnswerRecord{
		ID:           r.ID,
		AttemptID:    r.AttemptID,
		QuestionID:   r.QuestionID,
		Submitted:    util.StringToNullString(r.Submitted),
		IsCorrect:    r.IsCorrect,
		PointsEarned: r.PointsEarned,
		CreatedAt:    r.CreatedAt,
	}
}

func toDomainAnswerRecord(m *models.AnswerRecord) domain.AnswerRecord {
	return domain.AnswerRecord{
		ID:           m.ID,
		AttemptID:    m.AttemptID,
		QuestionID:   m.QuestionID,
		Submitted:    m.Submitted.String,
		IsCorrect:    m.IsCorrect,
		PointsEarned: m.PointsEarned,
		CreatedAt:    m.CreatedAt,
	}
}

// CreateAnswerRecords bulk-inserts the graded outcomes of one attempt.
// sqlx expands the named statement to a multi-row VALUES clause.
func (r *sqlxAnswerRecordRepository) CreateAnswerRecords(ctx context.Context, records []domain.AnswerRecord) error {
	if len(records) == 0 {
		return nil
	}
	exec := GetExecutor(ctx, r.db)

	now := time.Now()
	ms := make([]models.AnswerRecord, 0, len(records))
	for i := range records {
		m := fromDomainAnswerRecord(&records[i])
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		ms = append(ms, m)
	}

	query := `INSERT INTO answer_records (id, attempt_id, question_id, submitted_answer, is_correct, points_earned, created_at)
	          VALUES (:id, :attempt_id, :question_id, :submitted_answer, :is_correct, :points_earned, :created_at)`
	if _, err := exec.NamedExecContext(ctx, query, ms); err != nil {
		return fmt.Errorf("failed to bulk insert answer records: %w", err)
	}
	return nil
}

// GetAnswerRecordsByAttempt returns an attempt's answer records in
// question order.
func (r *sqlxAnswerRecordRepository) GetAnswerRecordsByAttempt(ctx context.Context, attemptID string) ([]domain.AnswerRecord, error) {
	exec := GetExecutor(ctx, r.db)

	var ms []models.AnswerRecord
	query := `SELECT ar.id, ar.attempt_id, ar.question_id, ar.submitted_answer, ar.is_correct, ar.points_earned, ar.created_at
	          FROM answer_records ar
	          JOIN questions q ON ar.question_id = q.id
	          WHERE ar.attempt_id = $1
	          ORDER BY q.order_index ASC`
	if err := exec.SelectContext(ctx, &ms, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get answer records for attempt %s: %w", attemptID, err)
	}

	records := make([]domain.AnswerRecord, len(ms))
	for i := range ms {
		records[i] = toDomainAnswerRecord(&ms[i])
	}
	return records, nil
}
