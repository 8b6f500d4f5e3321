package service

import (
	"context"
	"errors"

	"Dayflow/internal/cache"
	dom "Dayflow/internal/domain"
	"Dayflow/internal/order"
	"Dayflow/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// TaskListService handles task list lifecycle and reordering for one user
// at a time. If c is nil, caching is disabled.
type TaskListService struct {
	repo  repo.TaskListRepo
	cache *cache.TaskListCache
	sf    singleflight.Group
}

// NewTaskListService creates a TaskListService.
func NewTaskListService(r repo.TaskListRepo, c *cache.TaskListCache) *TaskListService {
	return &TaskListService{repo: r, cache: c}
}

// List returns the user's task lists ascending by rank.
func (s *TaskListService) List(ctx context.Context, userID uuid.UUID) ([]dom.TaskList, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list:"+userID.String(), func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.TaskList), nil
	}
	return s.repo.ListByUser(ctx, userID)
}

// Create appends a new task list at the tail of the user's set.
func (s *TaskListService) Create(ctx context.Context, userID uuid.UUID, title, description string) (dom.TaskList, error) {
	tl, err := s.repo.Create(ctx, userID, title, description)
	if err != nil {
		return dom.TaskList{}, err
	}
	s.invalidate(ctx, userID)
	return tl, nil
}

// Get returns one task list owned by the user.
func (s *TaskListService) Get(ctx context.Context, userID, id uuid.UUID) (dom.TaskList, error) {
	tl, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskList{}, ErrTasklistNotFound
		}
		return dom.TaskList{}, err
	}
	return tl, nil
}

// Update replaces title and description.
func (s *TaskListService) Update(ctx context.Context, userID, id uuid.UUID, title, description string) (dom.TaskList, error) {
	tl, err := s.repo.Update(ctx, userID, id, title, description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskList{}, ErrTasklistNotFound
		}
		return dom.TaskList{}, err
	}
	s.invalidate(ctx, userID)
	return tl, nil
}

// Delete removes the task list and, via cascade, its tasks and steps.
func (s *TaskListService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Reorder moves a task list to target within the user's set and returns
// the full reordered set.
func (s *TaskListService) Reorder(ctx context.Context, userID, itemID uuid.UUID, target int) ([]dom.TaskList, error) {
	list, err := s.repo.Reorder(ctx, userID, itemID, target)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrItemNotFound):
			return nil, &ValidationError{Field: "id", Reason: "Tasklist is not found"}
		case errors.Is(err, order.ErrOrderOutOfRange):
			return nil, &ValidationError{Field: "order", Reason: "Value is bigger than tasklists count"}
		}
		return nil, err
	}
	s.invalidate(ctx, userID)
	return list, nil
}

func (s *TaskListService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
