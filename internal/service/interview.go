package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"interview-agent/internal/cache"
	"interview-agent/internal/domain"
	"interview-agent/internal/dto"
	"interview-agent/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200

	// Read-side responses are cached briefly; writes do not invalidate,
	// staleness is bounded by the TTL.
	readCacheTTL = 60 * time.Second
)

// InterviewService exposes the read and delete side of stored records.
type InterviewService interface {
	ListInterviews(ctx context.Context, jobTitle string, limit int) (*dto.InterviewListResponse, error)
	GetInterview(ctx context.Context, id string) (*dto.InterviewRecordResponse, error)
	DeleteInterview(ctx context.Context, id string) error
}

// interviewService implements InterviewService. cacheService may be
// nil when Redis is not configured; every cache path degrades to the
// repository.
type interviewService struct {
	repo         domain.InterviewRepository
	cacheService domain.Cache
}

// NewInterviewService creates a new instance of interviewService
func NewInterviewService(repo domain.InterviewRepository, cacheService domain.Cache) InterviewService {
	return &interviewService{
		repo:         repo,
		cacheService: cacheService,
	}
}

// ListInterviews implements InterviewService. A non-positive limit
// falls back to the default; anything above the cap is clamped.
func (s *interviewService) ListInterviews(ctx context.Context, jobTitle string, limit int) (*dto.InterviewListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	cacheKey := cache.GenerateCacheKey("interview", "list", jobTitle, strconv.Itoa(limit))
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var resp dto.InterviewListResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		logger.Get().Warn("Discarding corrupt cache entry", zap.String("key", cacheKey))
	}

	records, err := s.repo.List(ctx, jobTitle, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list interview records", err)
	}

	resp := &dto.InterviewListResponse{Interviews: make([]*dto.InterviewRecordResponse, 0, len(records))}
	for _, record := range records {
		resp.Interviews = append(resp.Interviews, AssembleRecordResponse(record, recordSource(record)))
	}

	s.writeCache(ctx, cacheKey, resp)
	return resp, nil
}

// GetInterview implements InterviewService
func (s *interviewService) GetInterview(ctx context.Context, id string) (*dto.InterviewRecordResponse, error) {
	cacheKey := cache.GenerateCacheKey("interview", "record", id)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var resp dto.InterviewRecordResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		logger.Get().Warn("Discarding corrupt cache entry", zap.String("key", cacheKey))
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load interview record", err)
	}
	if record == nil {
		return nil, domain.NewRecordNotFoundError(id)
	}

	resp := AssembleRecordResponse(record, recordSource(record))
	s.writeCache(ctx, cacheKey, resp)
	return resp, nil
}

// DeleteInterview implements InterviewService. The record cache entry
// is removed best-effort; list entries age out via TTL.
func (s *interviewService) DeleteInterview(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.NewInternalError("failed to delete interview record", err)
	}
	if !found {
		return domain.NewRecordNotFoundError(id)
	}

	if s.cacheService != nil {
		cacheKey := cache.GenerateCacheKey("interview", "record", id)
		if err := s.cacheService.Delete(ctx, cacheKey); err != nil {
			logger.Get().Warn("Failed to evict cache entry",
				zap.String("key", cacheKey),
				zap.Error(err))
		}
	}
	return nil
}

// recordSource derives the response source tag from what was stored:
// records with structured pairs came from the model, the rest from the
// stub path.
func recordSource(record *domain.InterviewRecord) string {
	if record.QA != nil {
		return SourceModel
	}
	return SourceStub
}

func (s *interviewService) readCache(ctx context.Context, key string) (string, bool) {
	if s.cacheService == nil {
		return "", false
	}
	cached, err := s.cacheService.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return cached, true
}

func (s *interviewService) writeCache(ctx context.Context, key string, value any) {
	if s.cacheService == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, string(data), readCacheTTL); err != nil {
		logger.Get().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
