package domain

import "context"

// TextGenerator is the outbound port to the external language model.
// The model may deliver its output as multiple text fragments; callers
// must aggregate them in delivery order before parsing.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) ([]string, error)
}

// InterviewRepository is the persistence port for interview records.
type InterviewRepository interface {
	// Save persists a new record inside one transaction and fills in
	// the generated ID and CreatedAt on success.
	Save(ctx context.Context, record *InterviewRecord) error

	// GetByID returns nil, nil when no record exists.
	GetByID(ctx context.Context, id string) (*InterviewRecord, error)

	// List returns the newest records first, optionally filtered by
	// exact job title.
	List(ctx context.Context, jobTitle string, limit int) ([]*InterviewRecord, error)

	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}
