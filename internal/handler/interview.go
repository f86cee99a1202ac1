package handler

import (
	"strconv"
	"strings"

	"interview-agent/internal/dto"
	"interview-agent/internal/service"
	"interview-agent/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// InterviewHandler handles interview-related HTTP requests
type InterviewHandler struct {
	agent      service.AgentService
	interviews service.InterviewService
	validator  *validation.Validator
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(agent service.AgentService, interviews service.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		agent:      agent,
		interviews: interviews,
		validator:  validation.NewValidator(),
	}
}

// GenerateInterview godoc
// @Summary Generate interview questions for a job posting
// @Description Calls the configured language model once, normalizes its output and persists the record
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.GenerateInterviewRequest true "Job posting"
// @Success 201 {object} dto.InterviewRecordResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /interviews [post]
func (h *InterviewHandler) GenerateInterview(c *fiber.Ctx) error {
	var req dto.GenerateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateGenerateRequest(req.JobTitle, req.JobDescription); len(errs) > 0 {
		return errs
	}

	resp, err := h.agent.Generate(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateInterviewStub godoc
// @Summary Generate a stub interview record without calling the model
// @Description Persists a fixed question set tailored only by job title; intended for development and demos
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.GenerateInterviewRequest true "Job posting"
// @Success 201 {object} dto.InterviewRecordResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /interviews/stub [post]
func (h *InterviewHandler) GenerateInterviewStub(c *fiber.Ctx) error {
	var req dto.GenerateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateGenerateRequest(req.JobTitle, req.JobDescription); len(errs) > 0 {
		return errs
	}

	resp, err := h.agent.GenerateStub(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListInterviews godoc
// @Summary List stored interview records
// @Description Returns the newest records first, optionally filtered by exact job title
// @Tags interviews
// @Produce json
// @Param job_title query string false "Exact job title filter"
// @Param limit query int false "Maximum records to return (default 50, max 200)"
// @Success 200 {object} dto.InterviewListResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /interviews [get]
func (h *InterviewHandler) ListInterviews(c *fiber.Ctx) error {
	jobTitle := strings.TrimSpace(c.Query("job_title"))

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	resp, err := h.interviews.ListInterviews(c.Context(), jobTitle, limit)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetInterview godoc
// @Summary Get a single interview record
// @Tags interviews
// @Produce json
// @Param id path string true "Record ID (ULID)"
// @Success 200 {object} dto.InterviewRecordResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateRecordID(id); len(errs) > 0 {
		return errs
	}

	resp, err := h.interviews.GetInterview(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteInterview godoc
// @Summary Delete an interview record
// @Tags interviews
// @Produce json
// @Param id path string true "Record ID (ULID)"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /interviews/{id} [delete]
func (h *InterviewHandler) DeleteInterview(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateRecordID(id); len(errs) > 0 {
		return errs
	}

	if err := h.interviews.DeleteInterview(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Interview record deleted"})
}
