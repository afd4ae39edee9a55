package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/config"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/dto"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Quiz: config.QuizConfig{
			QuestionCacheTTL:       5 * time.Minute,
			DefaultDurationSeconds: 600,
		},
	}
}

func publishedQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:              "quiz1",
		TeacherID:       "teacher1",
		Title:           "World Capitals",
		DurationSeconds: 300,
		JoinCode:        "ABCDEF",
		Published:       true,
		CreatedAt:       time.Now(),
	}
}

func recordAnswerReq(questionID, answer string) *dto.RecordAnswerRequest {
	return &dto.RecordAnswerRequest{QuestionID: questionID, Answer: answer}
}

func newAttemptServiceForTest(t *testing.T, quizzes *MockQuizService, attempts *MockAttemptRepository, answers *MockAnswerRecordRepository) (AttemptService, *session.Registry) {
	t.Helper()
	registry := session.NewRegistry()
	recorder := NewAttemptRecorder(attempts, answers)
	svc := NewAttemptService(quizzes, recorder, attempts, answers, registry, testConfig())
	return svc, registry
}

func TestStartAttempt(t *testing.T) {
	quizzes := new(MockQuizService)
	attempts := new(MockAttemptRepository)
	answers := new(MockAnswerRecordRepository)
	svc, registry := newAttemptServiceForTest(t, quizzes, attempts, answers)
	ctx := context.Background()

	quizzes.On("ResolveJoinCode", ctx, "ABCDEF").Return(publishedQuiz(), nil).Once()
	quizzes.On("GetQuestions", ctx, "quiz1").Return(recorderQuestions(), nil).Once()

	resp, err := svc.StartAttempt(ctx, "student1", "ABCDEF")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.AttemptID)
	assert.Equal(t, "quiz1", resp.Quiz.ID)
	assert.Equal(t, 300, resp.RemainingSeconds)
	assert.Len(t, resp.Questions, 3)
	// The answer key never reaches the student payload.
	for _, q := range resp.Questions {
		for _, opt := range q.Options {
			assert.NotEmpty(t, opt.ID)
			assert.NotEmpty(t, opt.Text)
		}
	}
	assert.Equal(t, 1, registry.Len())

	// Nothing was persisted at start.
	attempts.AssertNotCalled(t, "CreateAttempt", mock.Anything, mock.Anything)
	quizzes.AssertExpectations(t)

	registry.Remove(resp.SessionID)
}

func TestStartAttempt_EmptyQuiz(t *testing.T) {
	quizzes := new(MockQuizService)
	svc, _ := newAttemptServiceForTest(t, quizzes, new(MockAttemptRepository), new(MockAnswerRecordRepository))
	ctx := context.Background()

	quizzes.On("ResolveJoinCode", ctx, "ABCDEF").Return(publishedQuiz(), nil).Once()
	quizzes.On("GetQuestions", ctx, "quiz1").Return([]domain.Question{}, nil).Once()

	_, err := svc.StartAttempt(ctx, "student1", "ABCDEF")
	assert.Error(t, err)
}

func TestStartAttempt_UnknownJoinCode(t *testing.T) {
	quizzes := new(MockQuizService)
	svc, _ := newAttemptServiceForTest(t, quizzes, new(MockAttemptRepository), new(MockAnswerRecordRepository))
	ctx := context.Background()

	quizzes.On("ResolveJoinCode", ctx, "ZZZZZZ").
		Return(nil, domain.NewJoinCodeNotFoundError("ZZZZZZ")).Once()

	_, err := svc.StartAttempt(ctx, "student1", "ZZZZZZ")
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeJoinCodeNotFound, domainErr.Code)
}

func TestRecordAnswerAndState(t *testing.T) {
	quizzes := new(MockQuizService)
	svc, registry := newAttemptServiceForTest(t, quizzes, new(MockAttemptRepository), new(MockAnswerRecordRepository))
	ctx := context.Background()

	quizzes.On("ResolveJoinCode", ctx, "ABCDEF").Return(publishedQuiz(), nil).Once()
	quizzes.On("GetQuestions", ctx, "quiz1").Return(recorderQuestions(), nil).Once()
	resp, err := svc.StartAttempt(ctx, "student1", "ABCDEF")
	assert.NoError(t, err)
	defer registry.Remove(resp.SessionID)

	state, err := svc.RecordAnswer(ctx, "student1", resp.SessionID, recordAnswerReq("q1", "opt-a"))
	assert.NoError(t, err)
	assert.Equal(t, 1, state.AnsweredCount)

	// Another student cannot touch the session.
	_, err = svc.RecordAnswer(ctx, "student2", resp.SessionID, recordAnswerReq("q1", "opt-b"))
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)

	state, err = svc.Advance(ctx, "student1", resp.SessionID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, state.CurrentIndex)

	state, err = svc.GetState("student1", resp.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, 2, state.CurrentIndex)
	assert.Equal(t, 1, state.AnsweredCount)
}

func TestSubmit(t *testing.T) {
	quizzes := new(MockQuizService)
	attempts := new(MockAttemptRepository)
	answers := new(MockAnswerRecordRepository)
	svc, registry := newAttemptServiceForTest(t, quizzes, attempts, answers)
	ctx := context.Background()

	quizzes.On("ResolveJoinCode", ctx, "ABCDEF").Return(publishedQuiz(), nil).Once()
	quizzes.On("GetQuestions", ctx, "quiz1").Return(recorderQuestions(), nil).Twice()
	resp, err := svc.StartAttempt(ctx, "student1", "ABCDEF")
	assert.NoError(t, err)

	_, err = svc.RecordAnswer(ctx, "student1", resp.SessionID, recordAnswerReq("q1", "opt-a"))
	assert.NoError(t, err)

	attempts.On("CreateAttempt", ctx, mock.Anything).Return(nil).Once()
	answers.On("CreateAnswerRecords", ctx, mock.Anything).Return(nil).Once()
	attempts.On("UpdateAttemptScore", ctx, resp.AttemptID, 2, 5).Return(nil).Once()

	result, err := svc.Submit(ctx, "student1", resp.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, resp.AttemptID, result.AttemptID)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 5, result.TotalPoints)
	assert.Len(t, result.Answers, 3)

	// The session is gone; a second submit reports session-not-found.
	assert.Equal(t, 0, registry.Len())
	_, err = svc.Submit(ctx, "student1", resp.SessionID)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)

	attempts.AssertExpectations(t)
	answers.AssertExpectations(t)
}

func TestSubmit_GuardAlreadyClaimed(t *testing.T) {
	quizzes := new(MockQuizService)
	attempts := new(MockAttemptRepository)
	answers := new(MockAnswerRecordRepository)
	svc, registry := newAttemptServiceForTest(t, quizzes, attempts, answers)
	ctx := context.Background()

	quizzes.On("ResolveJoinCode", ctx, "ABCDEF").Return(publishedQuiz(), nil).Once()
	quizzes.On("GetQuestions", ctx, "quiz1").Return(recorderQuestions(), nil).Once()
	resp, err := svc.StartAttempt(ctx, "student1", "ABCDEF")
	assert.NoError(t, err)
	defer registry.Remove(resp.SessionID)

	// Simulate the timer winning the race for the submission guard.
	sess := registry.Get(resp.SessionID)
	assert.True(t, sess.BeginSubmit())

	_, err = svc.Submit(ctx, "student1", resp.SessionID)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeAttemptCompleted, domainErr.Code)

	// The losing submit persisted nothing.
	attempts.AssertNotCalled(t, "CreateAttempt", mock.Anything, mock.Anything)
}

func TestLeave(t *testing.T) {
	quizzes := new(MockQuizService)
	attempts := new(MockAttemptRepository)
	svc, registry := newAttemptServiceForTest(t, quizzes, attempts, new(MockAnswerRecordRepository))
	ctx := context.Background()

	quizzes.On("ResolveJoinCode", ctx, "ABCDEF").Return(publishedQuiz(), nil).Once()
	quizzes.On("GetQuestions", ctx, "quiz1").Return(recorderQuestions(), nil).Once()
	resp, err := svc.StartAttempt(ctx, "student1", "ABCDEF")
	assert.NoError(t, err)

	assert.NoError(t, svc.Leave("student1", resp.SessionID))
	assert.Equal(t, 0, registry.Len())
	// Leaving persists nothing.
	attempts.AssertNotCalled(t, "CreateAttempt", mock.Anything, mock.Anything)
}

func TestGetResult(t *testing.T) {
	attempts := new(MockAttemptRepository)
	answers := new(MockAnswerRecordRepository)
	svc, _ := newAttemptServiceForTest(t, new(MockQuizService), attempts, answers)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		completed := time.Now()
		score, total := 4, 5
		attempts.On("GetAttemptByID", mock.Anything, "att1").Return(&domain.Attempt{
			ID:          "att1",
			QuizID:      "quiz1",
			StudentID:   "student1",
			Status:      domain.AttemptStatusCompleted,
			StartedAt:   completed.Add(-5 * time.Minute),
			CompletedAt: &completed,
			Score:       &score,
			TotalPoints: &total,
		}, nil).Once()
		answers.On("GetAnswerRecordsByAttempt", mock.Anything, "att1").Return([]domain.AnswerRecord{
			{QuestionID: "q1", Submitted: "opt-a", IsCorrect: true, PointsEarned: 2},
		}, nil).Once()

		result, err := svc.GetResult(ctx, "att1")
		assert.NoError(t, err)
		assert.Equal(t, 4, result.Score)
		assert.Equal(t, 5, result.TotalPoints)
		assert.Len(t, result.Answers, 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		attempts.On("GetAttemptByID", mock.Anything, "missing").Return(nil, nil).Once()
		answers.On("GetAnswerRecordsByAttempt", mock.Anything, "missing").Return([]domain.AnswerRecord{}, nil).Once()

		_, err := svc.GetResult(ctx, "missing")
		var domainErr *domain.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeAttemptNotFound, domainErr.Code)
	})
}

func TestGetQuizSummary(t *testing.T) {
	attempts := new(MockAttemptRepository)
	svc, _ := newAttemptServiceForTest(t, new(MockQuizService), attempts, new(MockAnswerRecordRepository))
	ctx := context.Background()

	attempts.On("GetQuizSummary", ctx, "quiz1").Return(&domain.QuizSummary{
		QuizID:        "quiz1",
		AttemptCount:  3,
		AverageScore:  3.5,
		BestScore:     5,
		TotalPossible: 5,
	}, nil).Once()

	summary, err := svc.GetQuizSummary(ctx, "quiz1")
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.AttemptCount)
	assert.InDelta(t, 3.5, summary.AverageScore, 0.0001)
	assert.Equal(t, 5, summary.BestScore)
}
