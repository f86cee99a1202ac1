package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"interview-agent/internal/domain"
	"interview-agent/internal/dto"
	"interview-agent/internal/handler"
	"interview-agent/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockAgentService
type MockAgentService struct {
	GenerateFunc     func(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error)
	GenerateStubFunc func(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error)
}

func (m *MockAgentService) Generate(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockAgentService.GenerateFunc not implemented")
}

func (m *MockAgentService) GenerateStub(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error) {
	if m.GenerateStubFunc != nil {
		return m.GenerateStubFunc(ctx, req)
	}
	panic("MockAgentService.GenerateStubFunc not implemented")
}

// MockInterviewService
type MockInterviewService struct {
	ListInterviewsFunc  func(ctx context.Context, jobTitle string, limit int) (*dto.InterviewListResponse, error)
	GetInterviewFunc    func(ctx context.Context, id string) (*dto.InterviewRecordResponse, error)
	DeleteInterviewFunc func(ctx context.Context, id string) error
}

func (m *MockInterviewService) ListInterviews(ctx context.Context, jobTitle string, limit int) (*dto.InterviewListResponse, error) {
	if m.ListInterviewsFunc != nil {
		return m.ListInterviewsFunc(ctx, jobTitle, limit)
	}
	panic("MockInterviewService.ListInterviewsFunc not implemented")
}

func (m *MockInterviewService) GetInterview(ctx context.Context, id string) (*dto.InterviewRecordResponse, error) {
	if m.GetInterviewFunc != nil {
		return m.GetInterviewFunc(ctx, id)
	}
	panic("MockInterviewService.GetInterviewFunc not implemented")
}

func (m *MockInterviewService) DeleteInterview(ctx context.Context, id string) error {
	if m.DeleteInterviewFunc != nil {
		return m.DeleteInterviewFunc(ctx, id)
	}
	panic("MockInterviewService.DeleteInterviewFunc not implemented")
}

const testRecordID = "01ARZ3NDEKTSV4RRFFQ69G5FAV"

func setupApp(agent *MockAgentService, interviews *MockInterviewService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})

	h := handler.NewInterviewHandler(agent, interviews)
	api := app.Group("/api")
	api.Post("/interviews", h.GenerateInterview)
	api.Post("/interviews/stub", h.GenerateInterviewStub)
	api.Get("/interviews", h.ListInterviews)
	api.Get("/interviews/:id", h.GetInterview)
	api.Delete("/interviews/:id", h.DeleteInterview)
	return app
}

func postJSON(app *fiber.App, path string, body any) (int, []byte) {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody
}

func TestGenerateInterviewCreated(t *testing.T) {
	agent := &MockAgentService{
		GenerateFunc: func(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error) {
			return &dto.InterviewRecordResponse{
				ID:        testRecordID,
				JobTitle:  req.JobTitle,
				Questions: []string{"B1?"},
				Source:    "model",
			}, nil
		},
	}
	app := setupApp(agent, &MockInterviewService{})

	status, body := postJSON(app, "/api/interviews", dto.GenerateInterviewRequest{
		JobTitle:       "Backend Engineer",
		JobDescription: "Designs and operates Go services.",
	})

	assert.Equal(t, fiber.StatusCreated, status)

	var resp dto.InterviewRecordResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, testRecordID, resp.ID)
	assert.Equal(t, "model", resp.Source)
}

func TestGenerateInterviewValidationError(t *testing.T) {
	app := setupApp(&MockAgentService{}, &MockInterviewService{})

	status, body := postJSON(app, "/api/interviews", dto.GenerateInterviewRequest{
		JobTitle: "Backend Engineer",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)

	var resp middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeValidation), resp.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "job_description", resp.Errors[0].Field)
}

func TestGenerateInterviewMalformedBody(t *testing.T) {
	app := setupApp(&MockAgentService{}, &MockInterviewService{})

	req := httptest.NewRequest("POST", "/api/interviews", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateInterviewModelUnavailable(t *testing.T) {
	agent := &MockAgentService{
		GenerateFunc: func(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error) {
			return nil, domain.NewAIUnavailableError("interview generation failed", nil)
		},
	}
	app := setupApp(agent, &MockInterviewService{})

	status, body := postJSON(app, "/api/interviews", dto.GenerateInterviewRequest{
		JobTitle:       "Backend Engineer",
		JobDescription: "Designs and operates Go services.",
	})

	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeAIUnavailable), resp.Code)
}

func TestGenerateInterviewStub(t *testing.T) {
	agent := &MockAgentService{
		GenerateStubFunc: func(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error) {
			return &dto.InterviewRecordResponse{ID: testRecordID, Source: "stub"}, nil
		},
	}
	app := setupApp(agent, &MockInterviewService{})

	status, body := postJSON(app, "/api/interviews/stub", dto.GenerateInterviewRequest{
		JobTitle:       "Backend Engineer",
		JobDescription: "Designs and operates Go services.",
	})

	assert.Equal(t, fiber.StatusCreated, status)

	var resp dto.InterviewRecordResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "stub", resp.Source)
}

func TestListInterviews(t *testing.T) {
	var gotTitle string
	var gotLimit int
	interviews := &MockInterviewService{
		ListInterviewsFunc: func(ctx context.Context, jobTitle string, limit int) (*dto.InterviewListResponse, error) {
			gotTitle = jobTitle
			gotLimit = limit
			return &dto.InterviewListResponse{Interviews: []*dto.InterviewRecordResponse{}}, nil
		},
	}
	app := setupApp(&MockAgentService{}, interviews)

	req := httptest.NewRequest("GET", "/api/interviews?job_title=SRE&limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "SRE", gotTitle)
	assert.Equal(t, 10, gotLimit)
}

func TestListInterviewsInvalidLimit(t *testing.T) {
	app := setupApp(&MockAgentService{}, &MockInterviewService{})

	req := httptest.NewRequest("GET", "/api/interviews?limit=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetInterview(t *testing.T) {
	interviews := &MockInterviewService{
		GetInterviewFunc: func(ctx context.Context, id string) (*dto.InterviewRecordResponse, error) {
			return &dto.InterviewRecordResponse{ID: id, Source: "model"}, nil
		},
	}
	app := setupApp(&MockAgentService{}, interviews)

	req := httptest.NewRequest("GET", "/api/interviews/"+testRecordID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetInterviewInvalidID(t *testing.T) {
	app := setupApp(&MockAgentService{}, &MockInterviewService{})

	req := httptest.NewRequest("GET", "/api/interviews/not-a-ulid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetInterviewNotFound(t *testing.T) {
	interviews := &MockInterviewService{
		GetInterviewFunc: func(ctx context.Context, id string) (*dto.InterviewRecordResponse, error) {
			return nil, domain.NewRecordNotFoundError(id)
		},
	}
	app := setupApp(&MockAgentService{}, interviews)

	req := httptest.NewRequest("GET", "/api/interviews/"+testRecordID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteInterview(t *testing.T) {
	interviews := &MockInterviewService{
		DeleteInterviewFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}
	app := setupApp(&MockAgentService{}, interviews)

	req := httptest.NewRequest("DELETE", "/api/interviews/"+testRecordID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteInterviewNotFound(t *testing.T) {
	interviews := &MockInterviewService{
		DeleteInterviewFunc: func(ctx context.Context, id string) error {
			return domain.NewRecordNotFoundError(id)
		},
	}
	app := setupApp(&MockAgentService{}, interviews)

	req := httptest.NewRequest("DELETE", "/api/interviews/"+testRecordID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
