package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestCreateAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)
	ctx := context.Background()

	started := time.Now().Add(-5 * time.Minute)
	completed := time.Now()
	attempt := &domain.Attempt{
		ID:          "att1",
		QuizID:      "quiz1",
		StudentID:   "student1",
		Status:      domain.AttemptStatusCompleted,
		StartedAt:   started,
		CompletedAt: &completed,
	}

	mock.ExpectExec(`INSERT INTO attempts`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateAttempt(ctx, attempt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAttemptByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		started := time.Now().Add(-10 * time.Minute)
		completed := time.Now()
		rows := sqlmock.NewRows([]string{"id", "quiz_id", "student_id", "status", "started_at", "completed_at", "score", "total_points"}).
			AddRow("att1", "quiz1", "student1", "completed", started, completed, 4, 5)
		mock.ExpectQuery(`SELECT .* FROM attempts WHERE id =`).
			WithArgs("att1").
			WillReturnRows(rows)

		attempt, err := repo.GetAttemptByID(ctx, "att1")
		assert.NoError(t, err)
		assert.NotNil(t, attempt)
		assert.Equal(t, "att1", attempt.ID)
		assert.Equal(t, domain.AttemptStatusCompleted, attempt.Status)
		assert.NotNil(t, attempt.Score)
		assert.Equal(t, 4, *attempt.Score)
		assert.NotNil(t, attempt.TotalPoints)
		assert.Equal(t, 5, *attempt.TotalPoints)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM attempts WHERE id =`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		attempt, err := repo.GetAttemptByID(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, attempt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateAttemptScore(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE attempts SET score =`).
			WithArgs(4, 5, "att1", "completed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateAttemptScore(ctx, "att1", 4, 5)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoCompletedAttempt", func(t *testing.T) {
		mock.ExpectExec(`UPDATE attempts SET score =`).
			WithArgs(4, 5, "att2", "completed").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateAttemptScore(ctx, "att2", 4, 5)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetQuizSummary(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)
	ctx := context.Background()

	t.Run("WithAttempts", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"attempt_count", "average_score", "best_score", "total_possible"}).
			AddRow(3, 3.5, 5, 5)
		mock.ExpectQuery(`SELECT COUNT\(\*\) AS attempt_count`).
			WithArgs("quiz1", "completed").
			WillReturnRows(rows)

		summary, err := repo.GetQuizSummary(ctx, "quiz1")
		assert.NoError(t, err)
		assert.Equal(t, "quiz1", summary.QuizID)
		assert.Equal(t, 3, summary.AttemptCount)
		assert.InDelta(t, 3.5, summary.AverageScore, 0.0001)
		assert.Equal(t, 5, summary.BestScore)
		assert.Equal(t, 5, summary.TotalPossible)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoAttempts", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"attempt_count", "average_score", "best_score", "total_possible"}).
			AddRow(0, nil, nil, nil)
		mock.ExpectQuery(`SELECT COUNT\(\*\) AS attempt_count`).
			WithArgs("quiz2", "completed").
			WillReturnRows(rows)

		summary, err := repo.GetQuizSummary(ctx, "quiz2")
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.AttemptCount)
		assert.Equal(t, float64(0), summary.AverageScore)
		assert.Equal(t, 0, summary.BestScore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
