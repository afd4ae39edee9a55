package service

import (
	"context"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuizByJoinCode(ctx context.Context, code string) (*domain.Quiz, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuizzesByTeacher(ctx context.Context, teacherID string) ([]domain.Quiz, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

// --- MockQuestionBank ---
type MockQuestionBank struct {
	mock.Mock
}

func (m *MockQuestionBank) GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) UpdateAttemptScore(ctx context.Context, attemptID string, score, totalPoints int) error {
	args := m.Called(ctx, attemptID, score, totalPoints)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetQuizSummary(ctx context.Context, quizID string) (*domain.QuizSummary, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSummary), args.Error(1)
}

// --- MockAnswerRecordRepository ---
type MockAnswerRecordRepository struct {
	mock.Mock
}

func (m *MockAnswerRecordRepository) CreateAnswerRecords(ctx context.Context, records []domain.AnswerRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockAnswerRecordRepository) GetAnswerRecordsByAttempt(ctx context.Context, attemptID string) ([]domain.AnswerRecord, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnswerRecord), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- passthroughTxManager ---
// passthroughTxManager runs the function directly without a store
// transaction, so service logic can be exercised against mocks.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- MockQuizService ---
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, teacherID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, teacherID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) UpdateQuiz(ctx context.Context, teacherID, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, teacherID, quizID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) DeleteQuiz(ctx context.Context, teacherID, quizID string) error {
	args := m.Called(ctx, teacherID, quizID)
	return args.Error(0)
}

func (m *MockQuizService) ListQuizzes(ctx context.Context, teacherID string) ([]dto.QuizResponse, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) PublishQuiz(ctx context.Context, teacherID, quizID string) (*dto.QuizResponse, error) {
	args := m.Called(ctx, teacherID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) UnpublishQuiz(ctx context.Context, teacherID, quizID string) (*dto.QuizResponse, error) {
	args := m.Called(ctx, teacherID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) ResolveJoinCode(ctx context.Context, code string) (*domain.Quiz, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizService) GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuizService) GetQuizWithQuestions(ctx context.Context, quizID string) (*domain.Quiz, []domain.Question, error) {
	args := m.Called(ctx, quizID)
	var quiz *domain.Quiz
	if args.Get(0) != nil {
		quiz = args.Get(0).(*domain.Quiz)
	}
	var questions []domain.Question
	if args.Get(1) != nil {
		questions = args.Get(1).([]domain.Question)
	}
	return quiz, questions, args.Error(2)
}
