package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"interview-agent/internal/domain"
	"interview-agent/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appReturning(err error) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func callBoom(t *testing.T, app *fiber.App) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestErrorHandlerValidationErrors(t *testing.T) {
	app := appReturning(domain.ValidationErrors{
		domain.NewMissingFieldError("job_title"),
	})

	status, body := callBoom(t, app)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var resp middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeValidation), resp.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "job_title", resp.Errors[0].Field)
}

func TestErrorHandlerDomainErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    *domain.DomainError
		status int
	}{
		{"ai unavailable", domain.NewAIUnavailableError("model down", errors.New("timeout")), fiber.StatusServiceUnavailable},
		{"record not found", domain.NewRecordNotFoundError("01ARZ3NDEKTSV4RRFFQ69G5FAV"), fiber.StatusNotFound},
		{"internal", domain.NewInternalError("db broke", errors.New("ORA-12170")), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := callBoom(t, appReturning(tc.err))
			assert.Equal(t, tc.status, status)

			var resp middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, string(tc.err.Code), resp.Code)
			assert.Equal(t, tc.status, resp.Status)
		})
	}
}

func TestErrorHandlerNotFoundCarriesDetails(t *testing.T) {
	status, body := callBoom(t, appReturning(domain.NewRecordNotFoundError("01ARZ3NDEKTSV4RRFFQ69G5FAV")))
	assert.Equal(t, fiber.StatusNotFound, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", resp.Details["record_id"])
}

func TestErrorHandlerFiberError(t *testing.T) {
	status, body := callBoom(t, appReturning(fiber.NewError(fiber.StatusBadRequest, "Invalid request body")))
	assert.Equal(t, fiber.StatusBadRequest, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "HTTP_ERROR", resp.Code)
}

func TestErrorHandlerUnknownError(t *testing.T) {
	status, body := callBoom(t, appReturning(errors.New("something odd")))
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeInternal), resp.Code)
	assert.Equal(t, "Internal server error", resp.Message)
}
