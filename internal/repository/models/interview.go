package models

import (
	"database/sql"
	"time"
)

// InterviewQuestion mirrors the interview_questions table. Questions
// and QA hold JSON text; QA is NULL for stub records and for rows
// predating the qa column.
type InterviewQuestion struct {
	ID             string         `db:"id"`
	JobTitle       string         `db:"job_title"`
	JobDescription string         `db:"job_description"`
	Questions      string         `db:"questions"`
	QA             sql.NullString `db:"qa"`
	CreatedAt      time.Time      `db:"created_at"`
}
