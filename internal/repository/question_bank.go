package repository

import (
	"context"
	"fmt"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionBank implements domain.QuestionBankRepository using sqlx.
// It is strictly read-only.
type sqlxQuestionBank struct {
	db *sqlx.DB
}

// NewSQLXQuestionBank creates a new instance of sqlxQuestionBank.
func NewSQLXQuestionBank(db *sqlx.DB) domain.QuestionBankRepository {
	return &sqlxQuestionBank{db: db}
}

func toDomainQuestion(m *models.Question, opts []models.Option) domain.Question {
	options := make([]domain.Option, 0, len(opts))
	for _, o := range opts {
		options = append(options, domain.Option{
			ID:         o.ID,
			QuestionID: o.QuestionID,
			Text:       o.Text,
			OrderIndex: o.OrderIndex,
		})
	}
	return domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Text:          m.Text,
		Type:          domain.QuestionType(m.QuestionType),
		Options:       options,
		CorrectAnswer: m.CorrectAnswer,
		Points:        m.Points,
		OrderIndex:    m.OrderIndex,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GetQuestions returns the quiz's questions in ascending order-index,
// with options nested in their display order.
func (r *sqlxQuestionBank) GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	exec := GetExecutor(ctx, r.db)

	var qms []models.Question
	query := `SELECT id, quiz_id, question_text, question_type, correct_answer, points, order_index, created_at, updated_at
	          FROM questions WHERE quiz_id = $1 ORDER BY order_index ASC`
	if err := exec.SelectContext(ctx, &qms, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}
	if len(qms) == 0 {
		return []domain.Question{}, nil
	}

	// One round trip for all options of the quiz, grouped in memory.
	var oms []models.Option
	optQuery := `SELECT o.id, o.question_id, o.option_text, o.order_index
	             FROM question_options o
	             JOIN questions q ON o.question_id = q.id
	             WHERE q.quiz_id = $1
	             ORDER BY o.question_id, o.order_index ASC`
	if err := exec.SelectContext(ctx, &oms, optQuery, quizID); err != nil {
		return nil, fmt.Errorf("failed to get options for quiz %s: %w", quizID, err)
	}

	optionsByQuestion := make(map[string][]models.Option, len(qms))
	for _, o := range oms {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], o)
	}

	questions := make([]domain.Question, 0, len(qms))
	for i := range qms {
		questions = append(questions, toDomainQuestion(&qms[i], optionsByQuestion[qms[i].ID]))
	}
	return questions, nil
}
