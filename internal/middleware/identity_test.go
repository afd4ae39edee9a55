package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newIdentityTestApp(handler fiber.Handler, protected fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/protected", protected, handler)
	return app
}

func TestRequireTeacher(t *testing.T) {
	var captured string
	app := newIdentityTestApp(func(c *fiber.Ctx) error {
		captured = TeacherID(c)
		return c.SendStatus(fiber.StatusOK)
	}, RequireTeacher())

	t.Run("WithHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Teacher-ID", "teacher1")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "teacher1", captured)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireStudent(t *testing.T) {
	var captured string
	app := newIdentityTestApp(func(c *fiber.Ctx) error {
		captured = StudentID(c)
		return c.SendStatus(fiber.StatusOK)
	}, RequireStudent())

	t.Run("WithHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Student-ID", "student1")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "student1", captured)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
