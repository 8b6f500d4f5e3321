package repo

import (
	"context"

	dom "Dayflow/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StepRepo provides step persistence. Steps carry no rank.
type StepRepo interface {
	Create(ctx context.Context, taskID uuid.UUID, title, description string) (dom.Step, error)
	GetByID(ctx context.Context, taskID, id uuid.UUID) (dom.Step, error)
	ReplaceTitle(ctx context.Context, taskID, id uuid.UUID, title string) (dom.Step, error)
	Delete(ctx context.Context, taskID, id uuid.UUID) error
}

// PGStepRepo implements StepRepo with Postgres.
type PGStepRepo struct {
	db *pgxpool.Pool
}

// NewPGStepRepo returns a new PGStepRepo.
func NewPGStepRepo(db *pgxpool.Pool) *PGStepRepo {
	return &PGStepRepo{db: db}
}

const stepColumns = `id, title, description, is_completed, task_id, created_at, updated_at`

func scanStep(row pgx.Row) (dom.Step, error) {
	var s dom.Step
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.IsCompleted, &s.TaskID, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create inserts a step under the task.
func (r *PGStepRepo) Create(ctx context.Context, taskID uuid.UUID, title, description string) (dom.Step, error) {
	query := `
		INSERT INTO steps (title, description, task_id)
		VALUES ($1, $2, $3)
		RETURNING ` + stepColumns
	return scanStep(r.db.QueryRow(ctx, query, title, description, taskID))
}

// GetByID returns one step of the task.
func (r *PGStepRepo) GetByID(ctx context.Context, taskID, id uuid.UUID) (dom.Step, error) {
	return scanStep(r.db.QueryRow(ctx,
		`SELECT `+stepColumns+` FROM steps WHERE task_id = $1 AND id = $2`, taskID, id))
}

// ReplaceTitle sets the step's title.
func (r *PGStepRepo) ReplaceTitle(ctx context.Context, taskID, id uuid.UUID, title string) (dom.Step, error) {
	query := `
		UPDATE steps SET title = $3, updated_at = now()
		WHERE task_id = $1 AND id = $2
		RETURNING ` + stepColumns
	return scanStep(r.db.QueryRow(ctx, query, taskID, id, title))
}

// Delete removes the step.
func (r *PGStepRepo) Delete(ctx context.Context, taskID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM steps WHERE task_id = $1 AND id = $2`, taskID, id)
	return err
}
