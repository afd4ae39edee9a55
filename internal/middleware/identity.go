package middleware

import (
	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the identity middleware.
const (
	TeacherIDKey = "teacher_id"
	StudentIDKey = "student_id"
)

// Authentication is delegated to the platform's access-control layer;
// the gateway forwards the verified caller identity in these headers.
const (
	teacherIDHeader = "X-Teacher-ID"
	studentIDHeader = "X-Student-ID"
)

// RequireTeacher extracts the teacher identity forwarded by the gateway.
func RequireTeacher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		teacherID := c.Get(teacherIDHeader)
		if teacherID == "" {
			return domain.NewError(domain.CodeUnauthorized, "Missing teacher identity", nil)
		}
		c.Locals(TeacherIDKey, teacherID)
		return c.Next()
	}
}

// RequireStudent extracts the student identity forwarded by the gateway.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID := c.Get(studentIDHeader)
		if studentID == "" {
			return domain.NewError(domain.CodeUnauthorized, "Missing student identity", nil)
		}
		c.Locals(StudentIDKey, studentID)
		return c.Next()
	}
}

// TeacherID returns the teacher identity stored by RequireTeacher.
func TeacherID(c *fiber.Ctx) string {
	id, _ := c.Locals(TeacherIDKey).(string)
	return id
}

// StudentID returns the student identity stored by RequireStudent.
func StudentID(c *fiber.Ctx) string {
	id, _ := c.Locals(StudentIDKey).(string)
	return id
}
