package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "Dayflow/internal/domain"

	"github.com/google/uuid"
)

type taskFixture struct {
	st     *memStore
	lists  *TaskListService
	tasks  *TaskService
	userID uuid.UUID
	listID uuid.UUID
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	st := newMemStore()
	listRepo := &memTaskListRepo{st: st}
	f := &taskFixture{
		st:     st,
		lists:  NewTaskListService(listRepo, nil),
		tasks:  NewTaskService(listRepo, &memTaskRepo{st: st}, &memStepRepo{st: st}),
		userID: uuid.New(),
	}
	tl, err := f.lists.Create(context.Background(), f.userID, "default", "")
	if err != nil {
		t.Fatalf("create tasklist: %v", err)
	}
	f.listID = tl.ID
	return f
}

func (f *taskFixture) mustCreate(t *testing.T, title string) dom.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), f.userID, f.listID, NewTaskInput{Title: title})
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

func taskTitles(tasks []dom.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func taskRanks(tasks []dom.Task) []int {
	out := make([]int, len(tasks))
	for i, task := range tasks {
		out[i] = task.SortOrder
	}
	return out
}

func TestTaskCreateAppendsToPendingScope(t *testing.T) {
	f := newTaskFixture(t)

	for i, title := range []string{"one", "two", "three"} {
		task := f.mustCreate(t, title)
		if task.SortOrder != i+1 {
			t.Fatalf("task %q: order = %d, want %d", title, task.SortOrder, i+1)
		}
		if task.IsCompleted {
			t.Fatalf("task %q created completed", title)
		}
	}
}

func TestTaskCreateWithInlineSteps(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.Create(context.Background(), f.userID, f.listID, NewTaskInput{
		Title: "move out",
		Steps: []NewStepInput{{Title: "pack"}, {Title: "clean", Description: "leave no trace"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(task.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(task.Steps))
	}
	if task.Steps[1].Description != "leave no trace" {
		t.Fatalf("step description = %q", task.Steps[1].Description)
	}

	got, err := f.tasks.Get(context.Background(), f.userID, f.listID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("reloaded steps = %d, want 2", len(got.Steps))
	}
}

func TestTaskCreateTrimsWhitespace(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.Create(context.Background(), f.userID, f.listID, NewTaskInput{
		Title:       "  laundry  ",
		Description: " darks first ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if task.Title != "laundry" || task.Description != "darks first" {
		t.Fatalf("got %q / %q", task.Title, task.Description)
	}
}

func TestTaskListFiltersByCompletion(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	a := f.mustCreate(t, "a")
	f.mustCreate(t, "b")

	done := true
	if _, err := f.tasks.PartialUpdate(ctx, f.userID, f.listID, a.ID, TaskPatch{IsCompleted: &done}); err != nil {
		t.Fatal(err)
	}

	pending, err := f.tasks.List(ctx, f.userID, f.listID, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := taskTitles(pending); !equalStrings(got, []string{"b"}) {
		t.Fatalf("pending = %v", got)
	}

	completed, err := f.tasks.List(ctx, f.userID, f.listID, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := taskTitles(completed); !equalStrings(got, []string{"a"}) {
		t.Fatalf("completed = %v", got)
	}
}

func TestTaskCompletionFlipKeepsRanks(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	f.mustCreate(t, "a")
	b := f.mustCreate(t, "b")
	f.mustCreate(t, "c")

	done := true
	flipped, err := f.tasks.PartialUpdate(ctx, f.userID, f.listID, b.ID, TaskPatch{IsCompleted: &done})
	if err != nil {
		t.Fatal(err)
	}
	if flipped.SortOrder != 2 {
		t.Fatalf("flipped rank = %d, want 2 carried over", flipped.SortOrder)
	}

	pending, err := f.tasks.List(ctx, f.userID, f.listID, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := taskRanks(pending); !equalInts(got, []int{1, 3}) {
		t.Fatalf("pending ranks = %v, want gap preserved [1 3]", got)
	}
}

func TestTaskPartialUpdateTouchesOnlyProvidedFields(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	due := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	task, err := f.tasks.Create(ctx, f.userID, f.listID, NewTaskInput{
		Title:       "report",
		Description: "quarterly numbers",
		DueDate:     &due,
	})
	if err != nil {
		t.Fatal(err)
	}

	newTitle := "annual report"
	got, err := f.tasks.PartialUpdate(ctx, f.userID, f.listID, task.ID, TaskPatch{Title: &newTitle})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "annual report" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Description != "quarterly numbers" {
		t.Fatalf("description changed: %q", got.Description)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("due date changed: %v", got.DueDate)
	}
	if got.IsCompleted {
		t.Fatal("completion changed")
	}
}

func TestTaskReorderWithinPendingScope(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	f.mustCreate(t, "a")
	f.mustCreate(t, "b")
	c := f.mustCreate(t, "c")

	tasks, err := f.tasks.Reorder(ctx, f.userID, f.listID, false, c.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := taskTitles(tasks); !equalStrings(got, []string{"c", "a", "b"}) {
		t.Fatalf("titles = %v", got)
	}
	if got := taskRanks(tasks); !equalInts(got, []int{1, 2, 3}) {
		t.Fatalf("ranks = %v", got)
	}
}

func TestTaskReorderResponseCarriesSteps(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	withSteps, err := f.tasks.Create(ctx, f.userID, f.listID, NewTaskInput{
		Title: "paint room",
		Steps: []NewStepInput{{Title: "tape edges"}, {Title: "first coat"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	f.mustCreate(t, "bare")

	tasks, err := f.tasks.Reorder(ctx, f.userID, f.listID, false, withSteps.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := taskTitles(tasks); !equalStrings(got, []string{"bare", "paint room"}) {
		t.Fatalf("titles = %v", got)
	}
	if len(tasks[1].Steps) != 2 || tasks[1].Steps[0].Title != "tape edges" {
		t.Fatalf("reorder dropped steps: %+v", tasks[1].Steps)
	}
}

func TestTaskReorderResponseIsScopeFiltered(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	f.mustCreate(t, "a")
	b := f.mustCreate(t, "b")
	f.mustCreate(t, "c")

	done := true
	if _, err := f.tasks.PartialUpdate(ctx, f.userID, f.listID, b.ID, TaskPatch{IsCompleted: &done}); err != nil {
		t.Fatal(err)
	}

	// Move c ahead of a within the pending scope; b is out of scope and
	// must appear neither in the plan nor in the response.
	pending, err := f.tasks.List(ctx, f.userID, f.listID, false)
	if err != nil {
		t.Fatal(err)
	}
	c := pending[1]

	tasks, err := f.tasks.Reorder(ctx, f.userID, f.listID, false, c.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := taskTitles(tasks); !equalStrings(got, []string{"c", "a"}) {
		t.Fatalf("titles = %v, want pending only", got)
	}
	for _, task := range tasks {
		if task.IsCompleted {
			t.Fatalf("completed task %q leaked into pending reorder response", task.Title)
		}
	}

	completed, err := f.tasks.List(ctx, f.userID, f.listID, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := taskRanks(completed); !equalInts(got, []int{2}) {
		t.Fatalf("completed ranks = %v, want untouched [2]", got)
	}
}

func TestTaskReorderCompletedTaskByIDFails(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	a := f.mustCreate(t, "a")
	f.mustCreate(t, "b")

	done := true
	if _, err := f.tasks.PartialUpdate(ctx, f.userID, f.listID, a.ID, TaskPatch{IsCompleted: &done}); err != nil {
		t.Fatal(err)
	}

	// a now lives in the completed scope, so moving it through the
	// pending scope is a validation failure on id.
	_, err := f.tasks.Reorder(ctx, f.userID, f.listID, false, a.ID, 1)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Field != "id" {
		t.Fatalf("field = %q, want id", verr.Field)
	}
}

func TestTaskReorderOutOfRange(t *testing.T) {
	f := newTaskFixture(t)

	a := f.mustCreate(t, "a")

	_, err := f.tasks.Reorder(context.Background(), f.userID, f.listID, false, a.ID, 5)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Field != "order" {
		t.Fatalf("field = %q, want order", verr.Field)
	}
}

func TestTaskOperationsRequireOwnedTasklist(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	other := uuid.New()

	task := f.mustCreate(t, "private")

	if _, err := f.tasks.List(ctx, other, f.listID, false); !errors.Is(err, ErrTasklistNotFound) {
		t.Fatalf("list: err = %v, want ErrTasklistNotFound", err)
	}
	if _, err := f.tasks.Get(ctx, other, f.listID, task.ID); !errors.Is(err, ErrTasklistNotFound) {
		t.Fatalf("get: err = %v, want ErrTasklistNotFound", err)
	}
	if _, err := f.tasks.Create(ctx, other, f.listID, NewTaskInput{Title: "x"}); !errors.Is(err, ErrTasklistNotFound) {
		t.Fatalf("create: err = %v, want ErrTasklistNotFound", err)
	}
}

func TestTaskGetUnknownReturnsNotFound(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.tasks.Get(context.Background(), f.userID, f.listID, uuid.New())
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskDeleteRemovesSteps(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, f.userID, f.listID, NewTaskInput{
		Title: "trip",
		Steps: []NewStepInput{{Title: "book flights"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.tasks.Delete(ctx, f.userID, f.listID, task.ID); err != nil {
		t.Fatal(err)
	}
	if len(f.st.steps) != 0 {
		t.Fatalf("%d steps survived task delete", len(f.st.steps))
	}
	if _, err := f.tasks.Get(ctx, f.userID, f.listID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}
