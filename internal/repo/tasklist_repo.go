package repo

import (
	"context"
	"fmt"

	dom "Dayflow/internal/domain"
	"Dayflow/internal/order"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskListRepo provides task list persistence. All queries are scoped to
// the owning user.
type TaskListRepo interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string) (dom.TaskList, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dom.TaskList, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (dom.TaskList, error)
	Update(ctx context.Context, userID, id uuid.UUID, title, description string) (dom.TaskList, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Reorder(ctx context.Context, userID, itemID uuid.UUID, target int) ([]dom.TaskList, error)
}

// PGTaskListRepo implements TaskListRepo with Postgres.
type PGTaskListRepo struct {
	db *pgxpool.Pool
}

// NewPGTaskListRepo returns a new PGTaskListRepo.
func NewPGTaskListRepo(db *pgxpool.Pool) *PGTaskListRepo {
	return &PGTaskListRepo{db: db}
}

const taskListColumns = `id, title, description, user_id, sort_order, created_at, updated_at`

func scanTaskList(row pgx.Row) (dom.TaskList, error) {
	var tl dom.TaskList
	err := row.Scan(&tl.ID, &tl.Title, &tl.Description, &tl.UserID, &tl.SortOrder, &tl.CreatedAt, &tl.UpdatedAt)
	return tl, err
}

// Create inserts a task list at the tail of the user's set. The append
// subselect takes no lock, so two concurrent creates for one user can mint
// the same rank; reads break the tie by created_at.
func (r *PGTaskListRepo) Create(ctx context.Context, userID uuid.UUID, title, description string) (dom.TaskList, error) {
	query := `
		INSERT INTO tasklists (title, description, user_id, sort_order)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(sort_order), 0) + 1 FROM tasklists WHERE user_id = $3))
		RETURNING ` + taskListColumns
	return scanTaskList(r.db.QueryRow(ctx, query, title, description, userID))
}

// ListByUser returns the user's task lists ascending by rank, then creation.
func (r *PGTaskListRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]dom.TaskList, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskListColumns+` FROM tasklists
		 WHERE user_id = $1 ORDER BY sort_order ASC, created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTaskLists(rows)
}

// GetByID returns one task list owned by the user.
func (r *PGTaskListRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (dom.TaskList, error) {
	return scanTaskList(r.db.QueryRow(ctx,
		`SELECT `+taskListColumns+` FROM tasklists WHERE user_id = $1 AND id = $2`, userID, id))
}

// Update replaces title and description.
func (r *PGTaskListRepo) Update(ctx context.Context, userID, id uuid.UUID, title, description string) (dom.TaskList, error) {
	query := `
		UPDATE tasklists SET title = $3, description = $4, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING ` + taskListColumns
	return scanTaskList(r.db.QueryRow(ctx, query, userID, id, title, description))
}

// Delete removes the task list; tasks and their steps go with it via FK
// cascade. Surviving siblings keep their ranks.
func (r *PGTaskListRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasklists WHERE user_id = $1 AND id = $2`, userID, id)
	return err
}

// Reorder moves itemID to target within the user's set and returns the
// freshly ordered set. The whole pass runs in one transaction with the
// scope's rows locked, so concurrent reorders on the same user serialize.
func (r *PGTaskListRepo) Reorder(ctx context.Context, userID, itemID uuid.UUID, target int) ([]dom.TaskList, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, sort_order FROM tasklists WHERE user_id = $1 ORDER BY sort_order FOR UPDATE`, userID)
	if err != nil {
		return nil, err
	}
	items, err := collectOrderItems(rows)
	if err != nil {
		return nil, err
	}

	updates, err := order.PlanMove(items, itemID, target)
	if err != nil {
		return nil, err
	}
	if err := applyOrderUpdates(ctx, tx, "tasklists", updates); err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx,
		`SELECT `+taskListColumns+` FROM tasklists
		 WHERE user_id = $1 ORDER BY sort_order ASC, created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	list, err := collectTaskLists(rows)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reorder: %w", err)
	}
	return list, nil
}

func collectTaskLists(rows pgx.Rows) ([]dom.TaskList, error) {
	defer rows.Close()
	var out []dom.TaskList
	for rows.Next() {
		tl, err := scanTaskList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tl)
	}
	return out, rows.Err()
}
