package service

import (
	"context"
	"errors"
	"strings"

	dom "Dayflow/internal/domain"
	"Dayflow/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StepService handles steps through the user→tasklist→task resolution
// chain; each missing link reads as not found for that level.
type StepService struct {
	tasklists repo.TaskListRepo
	tasks     repo.TaskRepo
	steps     repo.StepRepo
}

// NewStepService creates a StepService.
func NewStepService(tasklists repo.TaskListRepo, tasks repo.TaskRepo, steps repo.StepRepo) *StepService {
	return &StepService{tasklists: tasklists, tasks: tasks, steps: steps}
}

func (s *StepService) resolveTask(ctx context.Context, userID, tasklistID, taskID uuid.UUID) error {
	if _, err := s.tasklists.GetByID(ctx, userID, tasklistID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTasklistNotFound
		}
		return err
	}
	if _, err := s.tasks.GetByID(ctx, tasklistID, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// Create inserts a step under the task.
func (s *StepService) Create(ctx context.Context, userID, tasklistID, taskID uuid.UUID, title, description string) (dom.Step, error) {
	if err := s.resolveTask(ctx, userID, tasklistID, taskID); err != nil {
		return dom.Step{}, err
	}
	return s.steps.Create(ctx, taskID, strings.TrimSpace(title), strings.TrimSpace(description))
}

// ReplaceTitle sets the step's title.
func (s *StepService) ReplaceTitle(ctx context.Context, userID, tasklistID, taskID, stepID uuid.UUID, title string) (dom.Step, error) {
	if err := s.resolveTask(ctx, userID, tasklistID, taskID); err != nil {
		return dom.Step{}, err
	}
	st, err := s.steps.ReplaceTitle(ctx, taskID, stepID, strings.TrimSpace(title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Step{}, ErrStepNotFound
		}
		return dom.Step{}, err
	}
	return st, nil
}

// Delete removes the step.
func (s *StepService) Delete(ctx context.Context, userID, tasklistID, taskID, stepID uuid.UUID) error {
	if err := s.resolveTask(ctx, userID, tasklistID, taskID); err != nil {
		return err
	}
	if _, err := s.steps.GetByID(ctx, taskID, stepID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStepNotFound
		}
		return err
	}
	return s.steps.Delete(ctx, taskID, stepID)
}
