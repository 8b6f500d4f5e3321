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

// TaskRepo provides task persistence. The ordering scope of a task is
// (tasklist, is_completed): completed and pending tasks rank independently.
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	ListByTasklist(ctx context.Context, tasklistID uuid.UUID, completed bool) ([]dom.Task, error)
	GetByID(ctx context.Context, tasklistID, id uuid.UUID) (dom.Task, error)
	Update(ctx context.Context, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, tasklistID, id uuid.UUID) error
	Reorder(ctx context.Context, tasklistID uuid.UUID, completed bool, itemID uuid.UUID, target int) ([]dom.Task, error)
}

// PGTaskRepo implements TaskRepo with Postgres.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

// NewPGTaskRepo returns a new PGTaskRepo.
func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

const taskColumns = `id, title, description, tasklist_id, is_completed, reminder, due_date, sort_order, created_at, updated_at`

func scanTask(row pgx.Row) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.TasklistID, &t.IsCompleted,
		&t.Reminder, &t.DueDate, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create inserts a task at the tail of its tasklist's pending scope. Like
// the tasklist append, the subselect is unlocked: concurrent creates in one
// scope can mint the same rank, and reads break the tie by created_at.
func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (title, description, tasklist_id, reminder, due_date, sort_order)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(sort_order), 0) + 1 FROM tasks
			 WHERE tasklist_id = $3 AND is_completed = false))
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query, t.Title, t.Description, t.TasklistID, t.Reminder, t.DueDate))
}

// ListByTasklist returns the tasklist's tasks with the given completion
// flag, ascending by rank then creation, steps included.
func (r *PGTaskRepo) ListByTasklist(ctx context.Context, tasklistID uuid.UUID, completed bool) ([]dom.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE tasklist_id = $1 AND is_completed = $2
		 ORDER BY sort_order ASC, created_at ASC`, tasklistID, completed)
	if err != nil {
		return nil, err
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, err
	}
	if err := attachSteps(ctx, r.db, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID returns one task of the tasklist, steps included.
func (r *PGTaskRepo) GetByID(ctx context.Context, tasklistID, id uuid.UUID) (dom.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE tasklist_id = $1 AND id = $2`, tasklistID, id))
	if err != nil {
		return dom.Task{}, err
	}
	tasks := []dom.Task{t}
	if err := attachSteps(ctx, r.db, tasks); err != nil {
		return dom.Task{}, err
	}
	return tasks[0], nil
}

// Update writes the task's mutable columns from t.
func (r *PGTaskRepo) Update(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, is_completed = $4, reminder = $5, due_date = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.IsCompleted, t.Reminder, t.DueDate))
}

// Delete removes the task and its steps via FK cascade.
func (r *PGTaskRepo) Delete(ctx context.Context, tasklistID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE tasklist_id = $1 AND id = $2`, tasklistID, id)
	return err
}

// Reorder moves itemID to target within (tasklist, completed) and returns
// that scope freshly ordered, steps included. Same locking discipline as
// the tasklist reorder: one transaction, scope rows locked for the pass.
func (r *PGTaskRepo) Reorder(ctx context.Context, tasklistID uuid.UUID, completed bool, itemID uuid.UUID, target int) ([]dom.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, sort_order FROM tasks
		 WHERE tasklist_id = $1 AND is_completed = $2 ORDER BY sort_order FOR UPDATE`,
		tasklistID, completed)
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
	if err := applyOrderUpdates(ctx, tx, "tasks", updates); err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE tasklist_id = $1 AND is_completed = $2
		 ORDER BY sort_order ASC, created_at ASC`, tasklistID, completed)
	if err != nil {
		return nil, err
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, err
	}
	// Load steps inside the transaction so the returned scope is one
	// consistent read.
	if err := attachSteps(ctx, tx, tasks); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reorder: %w", err)
	}
	return tasks, nil
}

// querier is the Query subset shared by pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// attachSteps loads the steps of all given tasks in one query on q.
func attachSteps(ctx context.Context, q querier, tasks []dom.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(tasks))
	index := make(map[uuid.UUID]*dom.Task, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
		index[tasks[i].ID] = &tasks[i]
	}
	rows, err := q.Query(ctx,
		`SELECT `+stepColumns+` FROM steps WHERE task_id = ANY($1) ORDER BY created_at ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return err
		}
		if t, ok := index[s.TaskID]; ok {
			t.Steps = append(t.Steps, s)
		}
	}
	return rows.Err()
}

func collectTasks(rows pgx.Rows) ([]dom.Task, error) {
	defer rows.Close()
	var out []dom.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
