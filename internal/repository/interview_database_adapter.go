package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"interview-agent/internal/domain"
	"interview-agent/internal/logger"
	"interview-agent/internal/repository/models"
	"interview-agent/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// InterviewDatabaseAdapter implements domain.InterviewRepository using sqlx.DB
type InterviewDatabaseAdapter struct {
	db *sqlx.DB
}

// NewInterviewDatabaseAdapter creates a new instance of InterviewDatabaseAdapter
func NewInterviewDatabaseAdapter(db *sqlx.DB) domain.InterviewRepository {
	return &InterviewDatabaseAdapter{db: db}
}

const insertInterviewQuery = `INSERT INTO interview_questions (
	id, job_title, job_description, questions, qa, created_at
) VALUES (
	:1, :2, :3, :4, :5, :6
)`

// Save implements domain.InterviewRepository. The insert runs inside
// one transaction: committed on success, rolled back on any failure,
// so a failed generation never leaves a partially written record.
func (a *InterviewDatabaseAdapter) Save(ctx context.Context, record *domain.InterviewRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil interview record")
	}

	questionsJSON, err := json.Marshal(record.Questions)
	if err != nil {
		return fmt.Errorf("failed to serialize questions: %w", err)
	}

	var qaJSON sql.NullString
	if record.QA != nil {
		data, err := json.Marshal(record.QA)
		if err != nil {
			return fmt.Errorf("failed to serialize qa: %w", err)
		}
		qaJSON = sql.NullString{String: string(data), Valid: true}
	}

	id := util.NewULID()
	now := time.Now()

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertInterviewQuery,
		id,
		record.JobTitle,
		record.JobDescription,
		string(questionsJSON),
		qaJSON,
		now,
	); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Get().Error("Failed to roll back interview insert", zap.Error(rbErr))
		}
		return fmt.Errorf("failed to save interview record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interview record: %w", err)
	}

	record.ID = id
	record.CreatedAt = now
	return nil
}

// GetByID implements domain.InterviewRepository
func (a *InterviewDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.InterviewRecord, error) {
	var model models.InterviewQuestion
	query := `SELECT
		id "id",
		job_title "job_title",
		job_description "job_description",
		questions "questions",
		qa "qa",
		created_at "created_at"
	FROM interview_questions
	WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview record by ID %s: %w", id, err)
	}
	return toDomainInterview(&model), nil
}

// List implements domain.InterviewRepository
func (a *InterviewDatabaseAdapter) List(ctx context.Context, jobTitle string, limit int) ([]*domain.InterviewRecord, error) {
	var modelRecords []models.InterviewQuestion
	var err error

	if jobTitle != "" {
		query := `SELECT
			id "id",
			job_title "job_title",
			job_description "job_description",
			questions "questions",
			qa "qa",
			created_at "created_at"
		FROM interview_questions
		WHERE job_title = :1
		ORDER BY created_at DESC
		FETCH FIRST :2 ROWS ONLY`
		err = a.db.SelectContext(ctx, &modelRecords, query, jobTitle, limit)
	} else {
		query := `SELECT
			id "id",
			job_title "job_title",
			job_description "job_description",
			questions "questions",
			qa "qa",
			created_at "created_at"
		FROM interview_questions
		ORDER BY created_at DESC
		FETCH FIRST :1 ROWS ONLY`
		err = a.db.SelectContext(ctx, &modelRecords, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list interview records: %w", err)
	}

	records := make([]*domain.InterviewRecord, 0, len(modelRecords))
	for i := range modelRecords {
		records = append(records, toDomainInterview(&modelRecords[i]))
	}
	return records, nil
}

// Delete implements domain.InterviewRepository
func (a *InterviewDatabaseAdapter) Delete(ctx context.Context, id string) (bool, error) {
	result, err := a.db.ExecContext(ctx, `DELETE FROM interview_questions WHERE id = :1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete interview record %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// toDomainInterview converts a database model to the domain record.
// Reads are tolerant: unreadable JSON in a stored column degrades to
// an empty question list or nil QA instead of failing the whole read.
func toDomainInterview(model *models.InterviewQuestion) *domain.InterviewRecord {
	var questions []string
	if err := json.Unmarshal([]byte(model.Questions), &questions); err != nil {
		logger.Get().Warn("Stored questions column is not valid JSON",
			zap.String("id", model.ID),
			zap.Error(err))
		questions = []string{}
	}

	var qa *domain.QASet
	if model.QA.Valid && model.QA.String != "" {
		var set domain.QASet
		if err := json.Unmarshal([]byte(model.QA.String), &set); err != nil {
			logger.Get().Warn("Stored qa column is not valid JSON",
				zap.String("id", model.ID),
				zap.Error(err))
		} else {
			qa = &set
		}
	}

	return &domain.InterviewRecord{
		ID:             model.ID,
		JobTitle:       model.JobTitle,
		JobDescription: model.JobDescription,
		Questions:      questions,
		QA:             qa,
		CreatedAt:      model.CreatedAt,
	}
}
