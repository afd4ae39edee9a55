package service

import (
	"context"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/config"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/dto"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/logger"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/session"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AttemptService drives the quiz-taking flow: session lifecycle,
// answer recording, navigation, submission and results.
type AttemptService interface {
	StartAttempt(ctx context.Context, studentID, joinCode string) (*dto.StartAttemptResponse, error)
	RecordAnswer(ctx context.Context, studentID, sessionID string, req *dto.RecordAnswerRequest) (*dto.SessionStateResponse, error)
	Advance(ctx context.Context, studentID, sessionID string, delta int) (*dto.SessionStateResponse, error)
	GetState(studentID, sessionID string) (*dto.SessionStateResponse, error)
	// Submit finalizes the attempt. The second and every later call for
	// the same session reports the attempt as already completed.
	Submit(ctx context.Context, studentID, sessionID string) (*dto.AttemptResultResponse, error)
	// Leave tears the session down without persisting anything, for a
	// student navigating away from the quiz-taking view.
	Leave(studentID, sessionID string) error
	GetResult(ctx context.Context, attemptID string) (*dto.AttemptResultResponse, error)
	GetQuizSummary(ctx context.Context, quizID string) (*dto.QuizSummaryResponse, error)
}

type attemptService struct {
	quizzes  QuizService
	recorder *AttemptRecorder
	attempts domain.AttemptRepository
	answers  domain.AnswerRecordRepository
	sessions *session.Registry
	cfg      *config.Config
}

// NewAttemptService creates a new instance of attemptService.
func NewAttemptService(
	quizzes QuizService,
	recorder *AttemptRecorder,
	attempts domain.AttemptRepository,
	answers domain.AnswerRecordRepository,
	sessions *session.Registry,
	cfg *config.Config,
) AttemptService {
	return &attemptService{
		quizzes:  quizzes,
		recorder: recorder,
		attempts: attempts,
		answers:  answers,
		sessions: sessions,
		cfg:      cfg,
	}
}

// StartAttempt resolves the join code, loads the question set and
// opens a timed session. Nothing is persisted until submission.
func (s *attemptService) StartAttempt(ctx context.Context, studentID, joinCode string) (*dto.StartAttemptResponse, error) {
	quiz, err := s.quizzes.ResolveJoinCode(ctx, joinCode)
	if err != nil {
		return nil, err
	}

	questions, err := s.quizzes.GetQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.NewInvalidInputError("quiz has no questions")
	}

	duration := quiz.DurationSeconds
	if duration <= 0 {
		duration = s.cfg.Quiz.DefaultDurationSeconds
	}

	questionIDs := make([]string, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	sess := session.NewSession(
		util.NewULID(),
		util.NewULID(),
		quiz.ID,
		studentID,
		questionIDs,
		duration,
		s.autoSubmit,
	)
	s.sessions.Put(sess)
	sess.Start()

	logger.Get().Info("Attempt session started",
		zap.String("sessionID", sess.ID),
		zap.String("attemptID", sess.AttemptID),
		zap.String("quizID", quiz.ID),
		zap.Int("durationSeconds", duration),
	)

	return &dto.StartAttemptResponse{
		SessionID:        sess.ID,
		AttemptID:        sess.AttemptID,
		Quiz:             *toQuizResponse(quiz, len(questions)),
		Questions:        ToQuestionResponses(questions),
		RemainingSeconds: sess.Remaining(),
	}, nil
}

// RecordAnswer stores/overwrites one answer in the session.
func (s *attemptService) RecordAnswer(ctx context.Context, studentID, sessionID string, req *dto.RecordAnswerRequest) (*dto.SessionStateResponse, error) {
	sess, err := s.ownedSession(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.RecordAnswer(req.QuestionID, session.Answer{Value: req.Answer, Values: req.Answers}); err != nil {
		return nil, err
	}
	return s.state(sess), nil
}

// Advance moves the session's navigation position.
func (s *attemptService) Advance(ctx context.Context, studentID, sessionID string, delta int) (*dto.SessionStateResponse, error) {
	sess, err := s.ownedSession(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Advance(delta)
	return s.state(sess), nil
}

// GetState reports the session's observable state.
func (s *attemptService) GetState(studentID, sessionID string) (*dto.SessionStateResponse, error) {
	sess, err := s.ownedSession(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(sess), nil
}

// Submit finalizes the attempt via the recorder. The single-use guard
// in the session makes a concurrent timeout/manual race resolve to one
// submission; the loser observes ATTEMPT_COMPLETED.
func (s *attemptService) Submit(ctx context.Context, studentID, sessionID string) (*dto.AttemptResultResponse, error) {
	sess, err := s.ownedSession(studentID, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.BeginSubmit() {
		return nil, domain.NewAttemptCompletedError(sess.AttemptID)
	}

	result, err := s.finalize(ctx, sess)
	s.sessions.Remove(sess.ID)
	return result, err
}

// Leave tears the session down without grading or persisting.
func (s *attemptService) Leave(studentID, sessionID string) error {
	sess, err := s.ownedSession(studentID, sessionID)
	if err != nil {
		return err
	}
	s.sessions.Remove(sess.ID)
	logger.Get().Info("Attempt session abandoned by navigation",
		zap.String("sessionID", sess.ID),
		zap.String("attemptID", sess.AttemptID),
	)
	return nil
}

// autoSubmit is the session's expire callback; the countdown reaching
// zero has already claimed the submission guard.
func (s *attemptService) autoSubmit(sess *session.Session) {
	logger.Get().Info("Countdown expired, submitting attempt",
		zap.String("sessionID", sess.ID),
		zap.String("attemptID", sess.AttemptID),
	)
	if _, err := s.finalize(context.Background(), sess); err != nil {
		logger.Get().Error("Automatic submission failed",
			zap.String("attemptID", sess.AttemptID),
			zap.Error(err),
		)
	}
	s.sessions.Remove(sess.ID)
}

// finalize runs the recorder against the session's answer snapshot.
func (s *attemptService) finalize(ctx context.Context, sess *session.Session) (*dto.AttemptResultResponse, error) {
	questions, err := s.quizzes.GetQuestions(ctx, sess.QuizID)
	if err != nil {
		return nil, err
	}

	attempt := &domain.Attempt{
		ID:        sess.AttemptID,
		QuizID:    sess.QuizID,
		StudentID: sess.StudentID,
		Status:    domain.AttemptStatusInProgress,
		StartedAt: sess.StartedAt,
	}

	attempt, records, err := s.recorder.Record(ctx, attempt, questions, sess.Snapshot())
	if err != nil {
		return nil, err
	}
	return toAttemptResult(attempt, records), nil
}

// GetResult re-reads the persisted attempt and its answer records.
func (s *attemptService) GetResult(ctx context.Context, attemptID string) (*dto.AttemptResultResponse, error) {
	var (
		attempt *domain.Attempt
		records []domain.AnswerRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.attempts.GetAttemptByID(gctx, attemptID)
		if err != nil {
			return err
		}
		attempt = a
		return nil
	})
	g.Go(func() error {
		rs, err := s.answers.GetAnswerRecordsByAttempt(gctx, attemptID)
		if err != nil {
			return err
		}
		records = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to load attempt result", err)
	}
	if attempt == nil {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}
	return toAttemptResult(attempt, records), nil
}

// GetQuizSummary aggregates completed attempts of a quiz.
func (s *attemptService) GetQuizSummary(ctx context.Context, quizID string) (*dto.QuizSummaryResponse, error) {
	summary, err := s.attempts.GetQuizSummary(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz summary", err)
	}
	return &dto.QuizSummaryResponse{
		QuizID:        summary.QuizID,
		AttemptCount:  summary.AttemptCount,
		AverageScore:  summary.AverageScore,
		BestScore:     summary.BestScore,
		TotalPossible: summary.TotalPossible,
	}, nil
}

func (s *attemptService) ownedSession(studentID, sessionID string) (*session.Session, error) {
	sess := s.sessions.Get(sessionID)
	if sess == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	if sess.StudentID != studentID {
		return nil, domain.NewError(domain.CodeUnauthorized, "Session belongs to another student", nil)
	}
	return sess, nil
}

func (s *attemptService) state(sess *session.Session) *dto.SessionStateResponse {
	return &dto.SessionStateResponse{
		SessionID:        sess.ID,
		AttemptID:        sess.AttemptID,
		CurrentIndex:     sess.CurrentIndex(),
		RemainingSeconds: sess.Remaining(),
		AnsweredCount:    len(sess.Snapshot()),
	}
}

func ToQuestionResponses(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		options := make([]dto.OptionResponse, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, dto.OptionResponse{ID: opt.ID, Text: opt.Text})
		}
		out = append(out, dto.QuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			Type:    string(q.Type),
			Options: options,
			Points:  q.PointValue(),
		})
	}
	return out
}

func toAttemptResult(attempt *domain.Attempt, records []domain.AnswerRecord) *dto.AttemptResultResponse {
	answers := make([]dto.AnswerRecordResponse, 0, len(records))
	for _, r := range records {
		answers = append(answers, dto.AnswerRecordResponse{
			QuestionID:   r.QuestionID,
			Submitted:    r.Submitted,
			IsCorrect:    r.IsCorrect,
			PointsEarned: r.PointsEarned,
		})
	}

	result := &dto.AttemptResultResponse{
		AttemptID:   attempt.ID,
		QuizID:      attempt.QuizID,
		Status:      string(attempt.Status),
		StartedAt:   attempt.StartedAt,
		CompletedAt: attempt.CompletedAt,
		Answers:     answers,
	}
	if attempt.Score != nil {
		result.Score = *attempt.Score
	}
	if attempt.TotalPoints != nil {
		result.TotalPoints = *attempt.TotalPoints
	}
	return result
}
