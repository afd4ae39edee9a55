package service

import (
	"context"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/util"
)

// AttemptRecorder performs the submission transaction against the
// store: insert the completed attempt, bulk-insert one graded answer
// record per question (ascending order-index), then update the attempt
// with the summed score. The three writes are strictly sequential and
// deliberately non-atomic: on failure the partial state stands and the
// error surfaces; the persisted data is advisory analytics, not a
// ledger, so no compensating rollback is attempted.
type AttemptRecorder struct {
	attempts domain.AttemptRepository
	answers  domain.AnswerRecordRepository
}

// NewAttemptRecorder creates a new AttemptRecorder.
func NewAttemptRecorder(attempts domain.AttemptRepository, answers domain.AnswerRecordRepository) *AttemptRecorder {
	return &AttemptRecorder{attempts: attempts, answers: answers}
}

// Record grades every question against the submitted answers and
// persists the outcome. questions must already be in ascending
// order-index; questions never answered grade as incorrect.
func (r *AttemptRecorder) Record(
	ctx context.Context,
	attempt *domain.Attempt,
	questions []domain.Question,
	submitted map[string]string,
) (*domain.Attempt, []domain.AnswerRecord, error) {
	now := time.Now()
	attempt.Status = domain.AttemptStatusCompleted
	attempt.CompletedAt = &now

	// Write 1: the attempt row, completed but not yet scored.
	if err := r.attempts.CreateAttempt(ctx, attempt); err != nil {
		return nil, nil, domain.NewInternalError("Failed to persist attempt", err)
	}

	records := make([]domain.AnswerRecord, 0, len(questions))
	score, totalPoints := 0, 0
	for i := range questions {
		q := &questions[i]
		answer := submitted[q.ID]
		result := domain.Grade(q, answer)

		score += result.PointsEarned
		totalPoints += q.PointValue()

		records = append(records, domain.AnswerRecord{
			ID:           util.NewULID(),
			AttemptID:    attempt.ID,
			QuestionID:   q.ID,
			Submitted:    answer,
			IsCorrect:    result.IsCorrect,
			PointsEarned: result.PointsEarned,
			CreatedAt:    now,
		})
	}

	// Write 2: all answer records in one bulk insert.
	if err := r.answers.CreateAnswerRecords(ctx, records); err != nil {
		return nil, nil, domain.NewInternalError("Failed to persist answer records", err)
	}

	// Write 3: the summed score, dependent on every grade above.
	if err := r.attempts.UpdateAttemptScore(ctx, attempt.ID, score, totalPoints); err != nil {
		return nil, nil, domain.NewInternalError("Failed to update attempt score", err)
	}

	attempt.Score = &score
	attempt.TotalPoints = &totalPoints
	return attempt, records, nil
}
