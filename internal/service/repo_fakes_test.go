package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "Dayflow/internal/domain"
	"Dayflow/internal/order"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore backs the in-memory repo fakes. Deletes cascade the way the
// schema's foreign keys do.
type memStore struct {
	mu    sync.Mutex
	clock time.Time
	lists map[uuid.UUID]dom.TaskList
	tasks map[uuid.UUID]dom.Task
	steps map[uuid.UUID]dom.Step
}

func newMemStore() *memStore {
	return &memStore{
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		lists: make(map[uuid.UUID]dom.TaskList),
		tasks: make(map[uuid.UUID]dom.Task),
		steps: make(map[uuid.UUID]dom.Step),
	}
}

// tick returns a strictly increasing creation time so ordering tiebreaks
// are deterministic.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memTaskListRepo struct{ st *memStore }

func (r *memTaskListRepo) Create(_ context.Context, userID uuid.UUID, title, description string) (dom.TaskList, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	max := 0
	for _, tl := range r.st.lists {
		if tl.UserID == userID && tl.SortOrder > max {
			max = tl.SortOrder
		}
	}
	tl := dom.TaskList{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		UserID:      userID,
		SortOrder:   order.NextOrder(max),
		CreatedAt:   r.st.tick(),
	}
	r.st.lists[tl.ID] = tl
	return tl, nil
}

func (r *memTaskListRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]dom.TaskList, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.listLocked(userID), nil
}

func (r *memTaskListRepo) listLocked(userID uuid.UUID) []dom.TaskList {
	var out []dom.TaskList
	for _, tl := range r.st.lists {
		if tl.UserID == userID {
			out = append(out, tl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *memTaskListRepo) GetByID(_ context.Context, userID, id uuid.UUID) (dom.TaskList, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	tl, ok := r.st.lists[id]
	if !ok || tl.UserID != userID {
		return dom.TaskList{}, pgx.ErrNoRows
	}
	return tl, nil
}

func (r *memTaskListRepo) Update(_ context.Context, userID, id uuid.UUID, title, description string) (dom.TaskList, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	tl, ok := r.st.lists[id]
	if !ok || tl.UserID != userID {
		return dom.TaskList{}, pgx.ErrNoRows
	}
	now := r.st.tick()
	tl.Title = title
	tl.Description = description
	tl.UpdatedAt = &now
	r.st.lists[id] = tl
	return tl, nil
}

func (r *memTaskListRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	tl, ok := r.st.lists[id]
	if !ok || tl.UserID != userID {
		return nil
	}
	delete(r.st.lists, id)
	for taskID, t := range r.st.tasks {
		if t.TasklistID != nil && *t.TasklistID == id {
			delete(r.st.tasks, taskID)
			for stepID, s := range r.st.steps {
				if s.TaskID == taskID {
					delete(r.st.steps, stepID)
				}
			}
		}
	}
	return nil
}

func (r *memTaskListRepo) Reorder(_ context.Context, userID, itemID uuid.UUID, target int) ([]dom.TaskList, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var items []order.Item
	for _, tl := range r.st.lists {
		if tl.UserID == userID {
			items = append(items, order.Item{ID: tl.ID, SortOrder: tl.SortOrder})
		}
	}
	updates, err := order.PlanMove(items, itemID, target)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		tl := r.st.lists[u.ID]
		tl.SortOrder = u.SortOrder
		r.st.lists[u.ID] = tl
	}
	return r.listLocked(userID), nil
}

type memTaskRepo struct{ st *memStore }

func (r *memTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	max := 0
	for _, other := range r.st.tasks {
		if sameScope(other, t.TasklistID, false) && other.SortOrder > max {
			max = other.SortOrder
		}
	}
	t.ID = uuid.New()
	t.SortOrder = order.NextOrder(max)
	t.CreatedAt = r.st.tick()
	r.st.tasks[t.ID] = t
	return t, nil
}

func sameScope(t dom.Task, tasklistID *uuid.UUID, completed bool) bool {
	if t.IsCompleted != completed {
		return false
	}
	if t.TasklistID == nil || tasklistID == nil {
		return t.TasklistID == tasklistID
	}
	return *t.TasklistID == *tasklistID
}

func (r *memTaskRepo) ListByTasklist(_ context.Context, tasklistID uuid.UUID, completed bool) ([]dom.Task, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.listLocked(tasklistID, completed), nil
}

func (r *memTaskRepo) listLocked(tasklistID uuid.UUID, completed bool) []dom.Task {
	var out []dom.Task
	for _, t := range r.st.tasks {
		if sameScope(t, &tasklistID, completed) {
			out = append(out, r.withSteps(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *memTaskRepo) withSteps(t dom.Task) dom.Task {
	t.Steps = nil
	for _, s := range r.st.steps {
		if s.TaskID == t.ID {
			t.Steps = append(t.Steps, s)
		}
	}
	sort.Slice(t.Steps, func(i, j int) bool { return t.Steps[i].CreatedAt.Before(t.Steps[j].CreatedAt) })
	return t
}

func (r *memTaskRepo) GetByID(_ context.Context, tasklistID, id uuid.UUID) (dom.Task, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	t, ok := r.st.tasks[id]
	if !ok || t.TasklistID == nil || *t.TasklistID != tasklistID {
		return dom.Task{}, pgx.ErrNoRows
	}
	return r.withSteps(t), nil
}

func (r *memTaskRepo) Update(_ context.Context, t dom.Task) (dom.Task, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	existing, ok := r.st.tasks[t.ID]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	now := r.st.tick()
	existing.Title = t.Title
	existing.Description = t.Description
	existing.IsCompleted = t.IsCompleted
	existing.Reminder = t.Reminder
	existing.DueDate = t.DueDate
	existing.UpdatedAt = &now
	r.st.tasks[t.ID] = existing
	return existing, nil
}

func (r *memTaskRepo) Delete(_ context.Context, tasklistID, id uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	t, ok := r.st.tasks[id]
	if !ok || t.TasklistID == nil || *t.TasklistID != tasklistID {
		return nil
	}
	delete(r.st.tasks, id)
	for stepID, s := range r.st.steps {
		if s.TaskID == id {
			delete(r.st.steps, stepID)
		}
	}
	return nil
}

func (r *memTaskRepo) Reorder(_ context.Context, tasklistID uuid.UUID, completed bool, itemID uuid.UUID, target int) ([]dom.Task, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var items []order.Item
	for _, t := range r.st.tasks {
		if sameScope(t, &tasklistID, completed) {
			items = append(items, order.Item{ID: t.ID, SortOrder: t.SortOrder})
		}
	}
	updates, err := order.PlanMove(items, itemID, target)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		t := r.st.tasks[u.ID]
		t.SortOrder = u.SortOrder
		r.st.tasks[u.ID] = t
	}
	return r.listLocked(tasklistID, completed), nil
}

type memStepRepo struct{ st *memStore }

func (r *memStepRepo) Create(_ context.Context, taskID uuid.UUID, title, description string) (dom.Step, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s := dom.Step{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		TaskID:      taskID,
		CreatedAt:   r.st.tick(),
	}
	r.st.steps[s.ID] = s
	return s, nil
}

func (r *memStepRepo) GetByID(_ context.Context, taskID, id uuid.UUID) (dom.Step, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.steps[id]
	if !ok || s.TaskID != taskID {
		return dom.Step{}, pgx.ErrNoRows
	}
	return s, nil
}

func (r *memStepRepo) ReplaceTitle(_ context.Context, taskID, id uuid.UUID, title string) (dom.Step, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.steps[id]
	if !ok || s.TaskID != taskID {
		return dom.Step{}, pgx.ErrNoRows
	}
	now := r.st.tick()
	s.Title = title
	s.UpdatedAt = &now
	r.st.steps[id] = s
	return s, nil
}

func (r *memStepRepo) Delete(_ context.Context, taskID, id uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if s, ok := r.st.steps[id]; ok && s.TaskID == taskID {
		delete(r.st.steps, id)
	}
	return nil
}
