package dto

import "interview-agent/internal/domain"

// GenerateInterviewRequest is the request body for generation endpoints
// @Description Job posting the questions should be tailored to
type GenerateInterviewRequest struct {
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
}

// InterviewRecordResponse is the API shape of a stored interview record
// @Description Generated interview record
type InterviewRecordResponse struct {
	ID             string        `json:"id"`
	JobTitle       string        `json:"job_title"`
	JobDescription string        `json:"job_description"`
	Questions      []string      `json:"questions"`
	QA             *domain.QASet `json:"qa"`         // flat array or tier-keyed object, null for stub records
	CreatedAt      *string       `json:"created_at"` // RFC 3339, null for legacy rows
	Source         string        `json:"source"`     // "model" or "stub"
}

// InterviewListResponse wraps a page of interview records
type InterviewListResponse struct {
	Interviews []*InterviewRecordResponse `json:"interviews"`
}

// HealthResponse reports service dependency status
type HealthResponse struct {
	Status      string `json:"status"`
	AIAvailable bool   `json:"ai_available"`
	Database    string `json:"database"`
	Cache       string `json:"cache"`
}

// MessageResponse carries a human-readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
