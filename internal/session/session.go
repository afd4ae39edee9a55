// Package session holds the transient state of one student's run
// through a quiz: the answer map, navigation position and the
// countdown timer. Nothing here touches the store; persistence happens
// only when the session submits.
package session

import (
	"sync"
	"time"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
)

// Answer is one submitted answer. Value carries the scalar forms used
// today (option ID, "true"/"false", free text); Values is reserved for
// future multi-select questions and is ignored by grading.
type Answer struct {
	Value  string
	Values []string
}

// ExpireFunc is invoked exactly once when the countdown reaches zero.
// It runs on the session's timer goroutine, after the submission guard
// has been claimed.
type ExpireFunc func(s *Session)

// Session is the in-memory state for one attempt. All mutating methods
// are serialized by an internal mutex, so the timer tick and
// user-initiated actions never race.
type Session struct {
	ID        string
	AttemptID string
	QuizID    string
	StudentID string
	StartedAt time.Time

	mu          sync.Mutex
	questionIDs []string
	answers     map[string]Answer
	visited     map[string]bool
	current     int
	remaining   int
	submitting  bool
	stopped     bool

	onExpire ExpireFunc
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSession creates a session positioned at the first question with a
// full countdown. Start must be called to arm the timer.
func NewSession(id, attemptID, quizID, studentID string, questionIDs []string, durationSeconds int, onExpire ExpireFunc) *Session {
	ids := make([]string, len(questionIDs))
	copy(ids, questionIDs)
	return &Session{
		ID:          id,
		AttemptID:   attemptID,
		QuizID:      quizID,
		StudentID:   studentID,
		StartedAt:   time.Now(),
		questionIDs: ids,
		answers:     make(map[string]Answer),
		visited:     make(map[string]bool),
		remaining:   durationSeconds,
		onExpire:    onExpire,
		stopCh:      make(chan struct{}),
	}
}

// Start arms the countdown. The timer decrements once per second on a
// single goroutine; reaching zero triggers the expire callback exactly
// once.
func (s *Session) Start() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				if s.tick() {
					return
				}
			}
		}
	}()
}

// tick decrements the countdown and fires the expire callback when it
// reaches zero. It reports whether the timer goroutine should exit.
func (s *Session) tick() bool {
	s.mu.Lock()
	if s.submitting || s.stopped {
		s.mu.Unlock()
		return true
	}
	if s.remaining > 0 {
		s.remaining--
	}
	expired := s.remaining <= 0
	if expired {
		s.submitting = true
	}
	s.mu.Unlock()

	if expired && s.onExpire != nil {
		// Callback runs outside the lock; it will re-enter the session
		// via Snapshot.
		s.onExpire(s)
	}
	return expired
}

// RecordAnswer stores or overwrites the answer for a question and marks
// it visited. Correctness is never checked here. Once submission has
// begun the edit is discarded.
func (s *Session) RecordAnswer(questionID string, value Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return domain.NewAttemptCompletedError(s.AttemptID)
	}
	if !s.hasQuestion(questionID) {
		return domain.NewInvalidInputError("question does not belong to this quiz: " + questionID)
	}
	s.answers[questionID] = value
	s.visited[questionID] = true
	return nil
}

// Advance moves the current question index by delta, clamped to
// [0, questionCount-1]. It returns the resulting index.
func (s *Session) Advance(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current + delta
	if next < 0 {
		next = 0
	}
	if max := len(s.questionIDs) - 1; next > max {
		next = max
	}
	if next < 0 {
		next = 0
	}
	s.current = next
	return s.current
}

// CurrentIndex returns the current navigation position.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Visited reports whether the student has recorded an answer for the
// question at least once.
func (s *Session) Visited(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited[questionID]
}

// BeginSubmit claims the single-use submission guard. The first caller
// (manual submit or timer expiry) gets true; every later caller gets
// false and must treat the submission as a no-op.
func (s *Session) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

// Snapshot returns the scalar answers keyed by question ID. Questions
// never answered are absent from the map.
func (s *Session) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.answers))
	for id, a := range s.answers {
		out[id] = a.Value
	}
	return out
}

// Stop tears the session down, stopping the timer goroutine. Safe to
// call multiple times and concurrently with submission.
func (s *Session) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Session) hasQuestion(questionID string) bool {
	for _, id := range s.questionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}
