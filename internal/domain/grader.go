package domain

import (
	"strings"
)

// GradeResult is the outcome of grading one submitted answer.
type GradeResult struct {
	IsCorrect    bool
	PointsEarned int
}

// Grade compares a submitted answer against the question's answer key.
// It is a pure function: no side effects, identical inputs yield
// identical outputs.
//
// Rules by question type:
//   - multiple_choice / true_false: exact, case-sensitive match;
//     multiple_choice compares option IDs, not option text.
//   - short_answer: both sides trimmed and lowercased before comparing.
//
// An empty submission is incorrect for every type. A malformed
// multiple_choice question (no options, or a correct token matching no
// option) is treated as non-matchable rather than an error, so one bad
// question never blocks scoring the rest of the quiz.
func Grade(q *Question, submitted string) GradeResult {
	correct := false

	switch q.Type {
	case QuestionTypeMultipleChoice:
		correct = submitted != "" &&
			q.HasOption(q.CorrectAnswer) &&
			submitted == q.CorrectAnswer
	case QuestionTypeTrueFalse:
		correct = submitted != "" && submitted == q.CorrectAnswer
	case QuestionTypeShortAnswer:
		correct = submitted != "" && normalize(submitted) == normalize(q.CorrectAnswer)
	}

	if !correct {
		return GradeResult{}
	}
	return GradeResult{IsCorrect: true, PointsEarned: q.PointValue()}
}

func normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
