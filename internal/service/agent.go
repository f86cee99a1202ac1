package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"interview-agent/internal/domain"
	"interview-agent/internal/dto"
	"interview-agent/internal/llmtext"
	"interview-agent/internal/logger"

	"go.uber.org/zap"
)

// Source tags recorded on API responses.
const (
	SourceModel = "model"
	SourceStub  = "stub"
)

// AgentService owns the generate-and-save flow: prompt, one model
// call, normalization, persistence, response assembly.
type AgentService interface {
	Generate(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error)
	GenerateStub(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error)
}

// agentService implements AgentService. generator may be nil when no
// model credential is configured; Generate then fails as unavailable.
type agentService struct {
	generator domain.TextGenerator
	repo      domain.InterviewRepository
}

// NewAgentService creates a new instance of agentService
func NewAgentService(generator domain.TextGenerator, repo domain.InterviewRepository) AgentService {
	return &agentService{
		generator: generator,
		repo:      repo,
	}
}

// Generate implements AgentService. The model is invoked exactly once;
// any call or normalization failure collapses into one AI-unavailable
// condition with the cause attached for logs, and nothing is persisted
// on that path.
func (s *agentService) Generate(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error) {
	genReq := domain.NewGenerationRequest(req.JobTitle, req.JobDescription)
	if errs := genReq.Validate(); len(errs) > 0 {
		return nil, errs
	}

	if s.generator == nil {
		return nil, domain.NewAIUnavailableError("text generator is not configured", nil)
	}

	prompt := BuildInterviewPrompt(genReq.JobTitle, genReq.JobDescription)
	fragments, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		logger.Get().Error("Model call failed",
			zap.String("job_title", genReq.JobTitle),
			zap.Error(err))
		return nil, domain.NewAIUnavailableError("interview generation failed", err)
	}

	// Multi-part responses are joined in delivery order before parsing;
	// fragments are never parsed independently.
	raw := strings.Join(fragments, "\n")
	qa, err := llmtext.Normalize(raw, llmtext.ModeLeveled)
	if err != nil {
		logger.Get().Error("Model returned an unusable response",
			zap.String("job_title", genReq.JobTitle),
			zap.String("raw_response", raw),
			zap.Error(err))
		return nil, domain.NewAIUnavailableError("model returned an unusable response", err)
	}

	record := &domain.InterviewRecord{
		JobTitle:       genReq.JobTitle,
		JobDescription: genReq.JobDescription,
		Questions:      qa.Questions(),
		QA:             qa,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, domain.NewInternalError("failed to save interview record", err)
	}

	logger.Get().Info("Generated interview record",
		zap.String("id", record.ID),
		zap.String("job_title", record.JobTitle),
		zap.Int("question_count", len(record.Questions)))

	return AssembleRecordResponse(record, SourceModel), nil
}

// GenerateStub implements AgentService. It persists a deterministic
// non-AI question set without touching the model; useful when no
// credential is configured or for development.
func (s *agentService) GenerateStub(ctx context.Context, req *dto.GenerateInterviewRequest) (*dto.InterviewRecordResponse, error) {
	genReq := domain.NewGenerationRequest(req.JobTitle, req.JobDescription)
	if errs := genReq.Validate(); len(errs) > 0 {
		return nil, errs
	}

	record := &domain.InterviewRecord{
		JobTitle:       genReq.JobTitle,
		JobDescription: genReq.JobDescription,
		Questions:      stubQuestions(genReq.JobTitle),
		QA:             nil,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, domain.NewInternalError("failed to save interview record", err)
	}

	return AssembleRecordResponse(record, SourceStub), nil
}

func stubQuestions(jobTitle string) []string {
	return []string{
		fmt.Sprintf("Can you summarize your experience relevant to the %s role?", jobTitle),
		"Walk me through a challenging project you owned end-to-end and your impact.",
		fmt.Sprintf("Which tools, frameworks, or technologies are most important for a %s, and how have you used them?", jobTitle),
		"How do you approach debugging complex issues and preventing regressions?",
		"What would your 30/60/90-day plan look like for this position?",
	}
}

// AssembleRecordResponse combines a persisted record and its source
// tag into the API response shape.
func AssembleRecordResponse(record *domain.InterviewRecord, source string) *dto.InterviewRecordResponse {
	resp := &dto.InterviewRecordResponse{
		ID:             record.ID,
		JobTitle:       record.JobTitle,
		JobDescription: record.JobDescription,
		Questions:      record.Questions,
		QA:             record.QA,
		Source:         source,
	}
	if resp.Questions == nil {
		resp.Questions = []string{}
	}
	if !record.CreatedAt.IsZero() {
		createdAt := record.CreatedAt.UTC().Format(time.RFC3339)
		resp.CreatedAt = &createdAt
	}
	return resp
}
