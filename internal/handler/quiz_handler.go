package handler

import (
	"github.com/Kanishk-03-Jain/QuizMaster/internal/dto"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/middleware"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/service"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles teacher-facing quiz authoring requests
type QuizHandler struct {
	quizzes   service.QuizService
	attempts  service.AttemptService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizzes service.QuizService, attempts service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizzes:   quizzes,
		attempts:  attempts,
		validator: validation.NewValidator(),
	}
}

// CreateQuiz handles POST /api/quizzes
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateCreateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	quiz, err := h.quizzes.CreateQuiz(c.Context(), middleware.TeacherID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// ListQuizzes handles GET /api/quizzes
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizzes.ListQuizzes(c.Context(), middleware.TeacherID(c))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetQuiz handles GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, questions, err := h.quizzes.GetQuizWithQuestions(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := struct {
		dto.QuizResponse
		Questions []dto.QuestionResponse `json:"questions"`
	}{}
	resp.ID = quiz.ID
	resp.Title = quiz.Title
	resp.Description = quiz.Description
	resp.DurationSeconds = quiz.DurationSeconds
	resp.JoinCode = quiz.JoinCode
	resp.Published = quiz.Published
	resp.QuestionCount = len(questions)
	resp.CreatedAt = quiz.CreatedAt
	resp.Questions = service.ToQuestionResponses(questions)
	return c.JSON(resp)
}

// UpdateQuiz handles PUT /api/quizzes/:id
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	quiz, err := h.quizzes.UpdateQuiz(c.Context(), middleware.TeacherID(c), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// DeleteQuiz handles DELETE /api/quizzes/:id
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.quizzes.DeleteQuiz(c.Context(), middleware.TeacherID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PublishQuiz handles POST /api/quizzes/:id/publish
func (h *QuizHandler) PublishQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizzes.PublishQuiz(c.Context(), middleware.TeacherID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// UnpublishQuiz handles POST /api/quizzes/:id/unpublish
func (h *QuizHandler) UnpublishQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizzes.UnpublishQuiz(c.Context(), middleware.TeacherID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// GetQuizSummary handles GET /api/quizzes/:id/summary
func (h *QuizHandler) GetQuizSummary(c *fiber.Ctx) error {
	summary, err := h.attempts.GetQuizSummary(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
