package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/cache"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/config"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/dto"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/logger"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// joinCodeAlphabet avoids ambiguous characters (0/O, 1/I/L).
const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const joinCodeLength = 6

// QuizService defines authoring and question-bank operations.
type QuizService interface {
	CreateQuiz(ctx context.Context, teacherID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, teacherID, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, teacherID, quizID string) error
	ListQuizzes(ctx context.Context, teacherID string) ([]dto.QuizResponse, error)
	PublishQuiz(ctx context.Context, teacherID, quizID string) (*dto.QuizResponse, error)
	UnpublishQuiz(ctx context.Context, teacherID, quizID string) (*dto.QuizResponse, error)

	// ResolveJoinCode maps a join code to its published quiz, with a
	// cache lookaside for the code mapping.
	ResolveJoinCode(ctx context.Context, code string) (*domain.Quiz, error)
	// GetQuestions returns a quiz's ordered questions, served from
	// cache when warm. Callers must not expose the answer key.
	GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
	// GetQuizWithQuestions loads quiz metadata and its question set
	// concurrently.
	GetQuizWithQuestions(ctx context.Context, quizID string) (*domain.Quiz, []domain.Question, error)
}

type quizService struct {
	quizzes   domain.QuizRepository
	bank      domain.QuestionBankRepository
	txManager domain.TransactionManager
	cache     domain.Cache
	cfg       *config.Config
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(
	quizzes domain.QuizRepository,
	bank domain.QuestionBankRepository,
	txManager domain.TransactionManager,
	cacheClient domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		quizzes:   quizzes,
		bank:      bank,
		txManager: txManager,
		cache:     cacheClient,
		cfg:       cfg,
	}
}

func toQuizResponse(q *domain.Quiz, questionCount int) *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:              q.ID,
		Title:           q.Title,
		Description:     q.Description,
		DurationSeconds: q.DurationSeconds,
		JoinCode:        q.JoinCode,
		Published:       q.Published,
		QuestionCount:   questionCount,
		CreatedAt:       q.CreatedAt,
	}
}

// CreateQuiz persists a quiz and its questions in one transaction.
func (s *quizService) CreateQuiz(ctx context.Context, teacherID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	quiz := domain.NewQuiz(teacherID, req.Title, req.Description, req.DurationSeconds)
	if quiz.DurationSeconds <= 0 {
		quiz.DurationSeconds = s.cfg.Quiz.DefaultDurationSeconds
	}
	quiz.ID = util.NewULID()
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, 0, len(req.Questions))
	for i, in := range req.Questions {
		q, err := buildQuestion(quiz.ID, i, in)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.quizzes.SaveQuiz(ctx, quiz); err != nil {
			return err
		}
		for _, q := range questions {
			if err := s.quizzes.SaveQuestion(ctx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to create quiz", err)
	}

	return toQuizResponse(quiz, len(questions)), nil
}

// buildQuestion converts authoring input into a validated domain
// question, generating option IDs and resolving the correct-answer
// token.
func buildQuestion(quizID string, orderIndex int, in dto.QuestionInput) (*domain.Question, error) {
	q := domain.NewQuestion(quizID, in.Text, domain.QuestionType(in.Type), in.CorrectAnswer, in.Points, orderIndex)
	q.ID = util.NewULID()

	if q.Type == domain.QuestionTypeMultipleChoice {
		if in.CorrectOptionIndex == nil {
			return nil, domain.NewInvalidInputError("multiple_choice question requires correct_option_index")
		}
		if *in.CorrectOptionIndex < 0 || *in.CorrectOptionIndex >= len(in.Options) {
			return nil, domain.NewInvalidInputError("correct_option_index is out of range")
		}
		q.Options = make([]domain.Option, 0, len(in.Options))
		for j, opt := range in.Options {
			q.Options = append(q.Options, domain.Option{
				ID:         util.NewULID(),
				QuestionID: q.ID,
				Text:       opt.Text,
				OrderIndex: j,
			})
		}
		q.CorrectAnswer = q.Options[*in.CorrectOptionIndex].ID
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateQuiz updates quiz metadata and invalidates cached state.
func (s *quizService) UpdateQuiz(ctx context.Context, teacherID, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	if req.DurationSeconds > 0 {
		quiz.DurationSeconds = req.DurationSeconds
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizzes.UpdateQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to update quiz", err)
	}

	s.invalidateQuizCache(ctx, quiz)
	return toQuizResponse(quiz, 0), nil
}

// DeleteQuiz soft-deletes a quiz and drops its cached question set.
func (s *quizService) DeleteQuiz(ctx context.Context, teacherID, quizID string) error {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return err
	}
	if err := s.quizzes.DeleteQuiz(ctx, quizID); err != nil {
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	s.invalidateQuizCache(ctx, quiz)
	return nil
}

// ListQuizzes lists a teacher's quizzes.
func (s *quizService) ListQuizzes(ctx context.Context, teacherID string) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.GetQuizzesByTeacher(ctx, teacherID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	responses := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, *toQuizResponse(&quizzes[i], 0))
	}
	return responses, nil
}

// PublishQuiz assigns a join code and makes the quiz joinable.
func (s *quizService) PublishQuiz(ctx context.Context, teacherID, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if !quiz.Published {
		code, err := s.uniqueJoinCode(ctx)
		if err != nil {
			return nil, err
		}
		quiz.JoinCode = code
		quiz.Published = true
		if err := s.quizzes.UpdateQuiz(ctx, quiz); err != nil {
			return nil, domain.NewInternalError("Failed to publish quiz", err)
		}
	}

	return toQuizResponse(quiz, 0), nil
}

// UnpublishQuiz withdraws the quiz from the join flow; the code mapping
// is dropped from the cache.
func (s *quizService) UnpublishQuiz(ctx context.Context, teacherID, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if quiz.Published {
		oldCode := quiz.JoinCode
		quiz.Published = false
		quiz.JoinCode = ""
		if err := s.quizzes.UpdateQuiz(ctx, quiz); err != nil {
			return nil, domain.NewInternalError("Failed to unpublish quiz", err)
		}
		if s.cache != nil && oldCode != "" {
			if err := s.cache.Delete(ctx, cache.JoinCodeKey(oldCode)); err != nil {
				logger.Get().Warn("Failed to drop join code from cache",
					zap.String("quizID", quiz.ID), zap.Error(err))
			}
		}
	}

	return toQuizResponse(quiz, 0), nil
}

// ResolveJoinCode maps a join code to its published quiz.
func (s *quizService) ResolveJoinCode(ctx context.Context, code string) (*domain.Quiz, error) {
	if s.cache != nil {
		if quizID, err := s.cache.Get(ctx, cache.JoinCodeKey(code)); err == nil {
			quiz, err := s.quizzes.GetQuizByID(ctx, quizID)
			if err == nil && quiz != nil && quiz.Published {
				return quiz, nil
			}
			// Stale mapping; fall through to the store.
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Join code cache read failed", zap.Error(err))
		}
	}

	quiz, err := s.quizzes.GetQuizByJoinCode(ctx, code)
	if err != nil {
		return nil, domain.NewInternalError("Failed to resolve join code", err)
	}
	if quiz == nil {
		return nil, domain.NewJoinCodeNotFoundError(code)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.JoinCodeKey(code), quiz.ID, s.cfg.Quiz.QuestionCacheTTL); err != nil {
			logger.Get().Warn("Join code cache write failed", zap.Error(err))
		}
	}
	return quiz, nil
}

// GetQuestions returns the quiz's ordered question set, cache-first.
func (s *quizService) GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	key := cache.QuestionSetKey(quizID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var questions []domain.Question
			if err := json.Unmarshal([]byte(cached), &questions); err == nil {
				return questions, nil
			}
			logger.Get().Warn("Corrupt cached question set, refetching", zap.String("quizID", quizID))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Question cache read failed", zap.Error(err))
		}
	}

	questions, err := s.bank.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}

	if s.cache != nil && len(questions) > 0 {
		if payload, err := json.Marshal(questions); err == nil {
			if err := s.cache.Set(ctx, key, string(payload), s.cfg.Quiz.QuestionCacheTTL); err != nil {
				logger.Get().Warn("Question cache write failed", zap.Error(err))
			}
		}
	}
	return questions, nil
}

// GetQuizWithQuestions loads quiz metadata and questions concurrently.
func (s *quizService) GetQuizWithQuestions(ctx context.Context, quizID string) (*domain.Quiz, []domain.Question, error) {
	var (
		quiz      *domain.Quiz
		questions []domain.Question
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := s.quizzes.GetQuizByID(gctx, quizID)
		if err != nil {
			return err
		}
		quiz = q
		return nil
	})
	g.Go(func() error {
		qs, err := s.GetQuestions(gctx, quizID)
		if err != nil {
			return err
		}
		questions = qs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, nil, domain.NewQuizNotFoundError(quizID)
	}
	return quiz, questions, nil
}

// ownedQuiz loads a quiz and verifies the caller authored it.
func (s *quizService) ownedQuiz(ctx context.Context, teacherID, quizID string) (*domain.Quiz, error) {
	quiz, err := s.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	if quiz.TeacherID != teacherID {
		return nil, domain.NewError(domain.CodeUnauthorized, "Quiz belongs to another teacher", nil)
	}
	return quiz, nil
}

func (s *quizService) invalidateQuizCache(ctx context.Context, quiz *domain.Quiz) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.QuestionSetKey(quiz.ID)); err != nil {
		logger.Get().Warn("Failed to invalidate question cache",
			zap.String("quizID", quiz.ID), zap.Error(err))
	}
	if quiz.JoinCode != "" {
		if err := s.cache.Delete(ctx, cache.JoinCodeKey(quiz.JoinCode)); err != nil {
			logger.Get().Warn("Failed to invalidate join code cache",
				zap.String("quizID", quiz.ID), zap.Error(err))
		}
	}
}

// uniqueJoinCode draws codes until one is unused. Collisions are rare
// with a 31^6 space; give up after a few tries rather than loop.
func (s *quizService) uniqueJoinCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		code := randomJoinCode()
		existing, err := s.quizzes.GetQuizByJoinCode(ctx, code)
		if err != nil {
			return "", domain.NewInternalError("Failed to check join code", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", domain.NewInternalError("Failed to allocate a unique join code", nil)
}

func randomJoinCode() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, joinCodeLength)
	for i := range b {
		b[i] = joinCodeAlphabet[rng.Intn(len(joinCodeAlphabet))]
	}
	return string(b)
}
