package validation

import (
	"regexp"
	"strings"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateQuizRequest validates the quiz authoring request
func (v *Validator) ValidateCreateQuizRequest(req *dto.CreateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(req.Title) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("title", len(req.Title), 1, 200))
	}

	if req.DurationSeconds < 0 || req.DurationSeconds > 14400 {
		errors = append(errors, domain.NewOutOfRangeError("duration_seconds", req.DurationSeconds, 0, 14400))
	}

	if len(req.Questions) == 0 {
		errors = append(errors, domain.NewMissingFieldError("questions"))
	}
	for _, q := range req.Questions {
		if strings.TrimSpace(q.Text) == "" {
			errors = append(errors, domain.NewMissingFieldError("questions.text"))
			break
		}
		if !domain.QuestionType(q.Type).IsValid() {
			errors = append(errors, domain.NewInvalidFormatError("questions.type", q.Type))
			break
		}
	}

	return errors
}

// ValidateJoinCode validates the join code format
func (v *Validator) ValidateJoinCode(code string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(code) == "" {
		errors = append(errors, domain.NewMissingFieldError("join_code"))
		return errors
	}
	if !isValidJoinCode(code) {
		errors = append(errors, domain.NewInvalidFormatError("join_code", code))
	}
	return errors
}

// ValidateRecordAnswerRequest validates an answer submission
func (v *Validator) ValidateRecordAnswerRequest(req *dto.RecordAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.QuestionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	} else if !isValidULID(req.QuestionID) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", req.QuestionID))
	}
	if len(req.Answer) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(req.Answer), 0, 2000))
	}
	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

// isValidJoinCode checks the 6-character join code alphabet
func isValidJoinCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	validCode := regexp.MustCompile(`^[A-HJKMNP-Z2-9]{6}$`)
	return validCode.MatchString(strings.ToUpper(s))
}
