package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "Dayflow/internal/domain"
	"Dayflow/internal/order"
	"Dayflow/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NewTaskInput is a task to create, optionally with inline steps.
type NewTaskInput struct {
	Title       string
	Description string
	Reminder    *time.Time
	DueDate     *time.Time
	Steps       []NewStepInput
}

// NewStepInput is a step created inline with its task.
type NewStepInput struct {
	Title       string
	Description string
}

// TaskPatch carries the fields of a partial update; nil means untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Reminder    *time.Time
	DueDate     *time.Time
	IsCompleted *bool
}

// TaskService handles tasks within a tasklist. Every operation resolves the
// tasklist through the calling user first, so a foreign or missing tasklist
// reads as not found.
type TaskService struct {
	tasklists repo.TaskListRepo
	tasks     repo.TaskRepo
	steps     repo.StepRepo
}

// NewTaskService creates a TaskService.
func NewTaskService(tasklists repo.TaskListRepo, tasks repo.TaskRepo, steps repo.StepRepo) *TaskService {
	return &TaskService{tasklists: tasklists, tasks: tasks, steps: steps}
}

func (s *TaskService) resolveTasklist(ctx context.Context, userID, tasklistID uuid.UUID) (dom.TaskList, error) {
	tl, err := s.tasklists.GetByID(ctx, userID, tasklistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskList{}, ErrTasklistNotFound
		}
		return dom.TaskList{}, err
	}
	return tl, nil
}

// List returns the tasklist's tasks with the given completion flag, steps
// included, ascending by rank.
func (s *TaskService) List(ctx context.Context, userID, tasklistID uuid.UUID, completed bool) ([]dom.Task, error) {
	if _, err := s.resolveTasklist(ctx, userID, tasklistID); err != nil {
		return nil, err
	}
	return s.tasks.ListByTasklist(ctx, tasklistID, completed)
}

// Create appends a task at the tail of the tasklist's pending scope and
// creates any inline steps under it.
func (s *TaskService) Create(ctx context.Context, userID, tasklistID uuid.UUID, in NewTaskInput) (dom.Task, error) {
	if _, err := s.resolveTasklist(ctx, userID, tasklistID); err != nil {
		return dom.Task{}, err
	}
	t, err := s.tasks.Create(ctx, dom.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		TasklistID:  &tasklistID,
		Reminder:    in.Reminder,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return dom.Task{}, err
	}
	for _, st := range in.Steps {
		created, err := s.steps.Create(ctx, t.ID, strings.TrimSpace(st.Title), strings.TrimSpace(st.Description))
		if err != nil {
			return dom.Task{}, err
		}
		t.Steps = append(t.Steps, created)
	}
	return t, nil
}

// Get returns one task of the tasklist, steps included.
func (s *TaskService) Get(ctx context.Context, userID, tasklistID, taskID uuid.UUID) (dom.Task, error) {
	if _, err := s.resolveTasklist(ctx, userID, tasklistID); err != nil {
		return dom.Task{}, err
	}
	t, err := s.tasks.GetByID(ctx, tasklistID, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrTaskNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// PartialUpdate applies only the fields present in patch. Flipping
// IsCompleted moves the task between the two ordering scopes without
// renumbering either; ranks stay as they were.
func (s *TaskService) PartialUpdate(ctx context.Context, userID, tasklistID, taskID uuid.UUID, patch TaskPatch) (dom.Task, error) {
	existing, err := s.Get(ctx, userID, tasklistID, taskID)
	if err != nil {
		return dom.Task{}, err
	}
	if patch.Title != nil {
		existing.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		existing.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Reminder != nil {
		existing.Reminder = patch.Reminder
	}
	if patch.DueDate != nil {
		existing.DueDate = patch.DueDate
	}
	if patch.IsCompleted != nil {
		existing.IsCompleted = *patch.IsCompleted
	}
	steps := existing.Steps
	t, err := s.tasks.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrTaskNotFound
		}
		return dom.Task{}, err
	}
	t.Steps = steps
	return t, nil
}

// Delete removes the task and its steps.
func (s *TaskService) Delete(ctx context.Context, userID, tasklistID, taskID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, tasklistID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, tasklistID, taskID)
}

// Reorder moves a task to target within (tasklist, completed) and returns
// that scope freshly ordered. The response is filtered by the same scope
// the move ran against.
func (s *TaskService) Reorder(ctx context.Context, userID, tasklistID uuid.UUID, completed bool, itemID uuid.UUID, target int) ([]dom.Task, error) {
	if _, err := s.resolveTasklist(ctx, userID, tasklistID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.Reorder(ctx, tasklistID, completed, itemID, target)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrItemNotFound):
			return nil, &ValidationError{Field: "id", Reason: "Task is not found"}
		case errors.Is(err, order.ErrOrderOutOfRange):
			return nil, &ValidationError{Field: "order", Reason: "Value is bigger than tasks count"}
		}
		return nil, err
	}
	return tasks, nil
}
