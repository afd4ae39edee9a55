package handler

import (
	"strings"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/dto"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/middleware"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/service"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AttemptHandler handles student-facing quiz-taking requests
type AttemptHandler struct {
	attempts  service.AttemptService
	validator *validation.Validator
}

// NewAttemptHandler creates a new AttemptHandler instance
func NewAttemptHandler(attempts service.AttemptService) *AttemptHandler {
	return &AttemptHandler{
		attempts:  attempts,
		validator: validation.NewValidator(),
	}
}

// JoinQuiz handles POST /api/attempts: a student enters a join code and
// receives a running session with the sanitized question set.
func (h *AttemptHandler) JoinQuiz(c *fiber.Ctx) error {
	var req dto.JoinQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateJoinCode(req.JoinCode); len(errs) > 0 {
		return errs
	}
	// Codes are stored uppercase; accept any casing from the student.
	code := strings.ToUpper(strings.TrimSpace(req.JoinCode))

	resp, err := h.attempts.StartAttempt(c.Context(), middleware.StudentID(c), code)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RecordAnswer handles PUT /api/sessions/:id/answers
func (h *AttemptHandler) RecordAnswer(c *fiber.Ctx) error {
	var req dto.RecordAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateRecordAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	state, err := h.attempts.RecordAnswer(c.Context(), middleware.StudentID(c), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// Advance handles POST /api/sessions/:id/advance
func (h *AttemptHandler) Advance(c *fiber.Ctx) error {
	var req dto.AdvanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	state, err := h.attempts.Advance(c.Context(), middleware.StudentID(c), c.Params("id"), req.Delta)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// GetState handles GET /api/sessions/:id
func (h *AttemptHandler) GetState(c *fiber.Ctx) error {
	state, err := h.attempts.GetState(middleware.StudentID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// Submit handles POST /api/sessions/:id/submit
func (h *AttemptHandler) Submit(c *fiber.Ctx) error {
	result, err := h.attempts.Submit(c.Context(), middleware.StudentID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Leave handles DELETE /api/sessions/:id
func (h *AttemptHandler) Leave(c *fiber.Ctx) error {
	if err := h.attempts.Leave(middleware.StudentID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetResult handles GET /api/attempts/:id
func (h *AttemptHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.attempts.GetResult(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
