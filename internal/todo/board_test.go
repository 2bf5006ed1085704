package todo

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// newTestBoard returns a board with a controllable clock and sequential ids.
func newTestBoard(t *testing.T, tasks []Task) (Board, *time.Time) {
	t.Helper()
	now := at("2025-01-15T12:00:00Z")
	n := 0
	b := NewBoard(tasks, DefaultCategories(),
		WithClock(func() time.Time { return now }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	return b, &now
}

func TestBoardAdd(t *testing.T) {
	b, now := newTestBoard(t, fixture())
	b2, task, err := b.Add(NewTask{Title: "  New thing  ", Priority: PriorityHigh, Category: "work", DueDate: due("2025-02-01")})
	if err != nil {
		t.Fatal(err)
	}
	if task.ID != "id-1" || task.Title != "New thing" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Fatal("new task must be active")
	}
	if !task.CreatedAt.Equal(*now) {
		t.Fatalf("CreatedAt = %v, want %v", task.CreatedAt, *now)
	}
	if len(b2.Tasks) != len(b.Tasks)+1 || b2.Tasks[0].ID != "id-1" {
		t.Fatal("new task should be prepended")
	}
	if len(b.Tasks) != len(fixture()) {
		t.Fatal("original board must not change")
	}
}

func TestBoardAddDefaultsPriority(t *testing.T) {
	b, _ := newTestBoard(t, nil)
	_, task, err := b.Add(NewTask{Title: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("Priority = %q, want medium", task.Priority)
	}
}

func TestBoardAddEmptyTitle(t *testing.T) {
	b, _ := newTestBoard(t, nil)
	_, _, err := b.Add(NewTask{Title: "   "})
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestBoardToggleTwiceRestores(t *testing.T) {
	b, now := newTestBoard(t, fixture())
	b1 := b.Toggle("2")
	task, _ := b1.Task("2")
	if !task.Completed || task.CompletedAt == nil || !task.CompletedAt.Equal(*now) {
		t.Fatalf("toggle should complete and stamp: %+v", task)
	}
	b2 := b1.Toggle("2")
	task, _ = b2.Task("2")
	if task.Completed || task.CompletedAt != nil {
		t.Fatalf("second toggle should restore: %+v", task)
	}
	orig, _ := b.Task("2")
	if orig.Completed {
		t.Fatal("original board must not change")
	}
}

func TestBoardToggleUnknownIsNoop(t *testing.T) {
	b, _ := newTestBoard(t, fixture())
	b2 := b.Toggle("missing")
	if len(b2.Tasks) != len(b.Tasks) {
		t.Fatal("task count changed")
	}
}

func TestBoardUpdate(t *testing.T) {
	b, _ := newTestBoard(t, fixture())
	title := "Renamed"
	prio := PriorityLow
	b2 := b.Update("1", Patch{Title: &title, Priority: &prio, ClearDueDate: true})
	task, _ := b2.Task("1")
	if task.Title != "Renamed" || task.Priority != PriorityLow || task.DueDate != nil {
		t.Fatalf("unexpected update result: %+v", task)
	}
	orig, _ := b.Task("1")
	if orig.Title != "Write report" || orig.DueDate == nil {
		t.Fatal("original board must not change")
	}
}

func TestBoardUpdateBlankTitleIgnored(t *testing.T) {
	b, _ := newTestBoard(t, fixture())
	blank := "  "
	task, _ := b.Update("1", Patch{Title: &blank}).Task("1")
	if task.Title != "Write report" {
		t.Fatalf("blank title should be ignored, got %q", task.Title)
	}
}

func TestBoardUpdateCompletedLeavesCompletedAt(t *testing.T) {
	b, _ := newTestBoard(t, fixture())
	b = b.Toggle("2")
	no := false
	task, _ := b.Update("2", Patch{Completed: &no}).Task("2")
	if task.Completed {
		t.Fatal("Completed should be false")
	}
	if task.CompletedAt == nil {
		t.Fatal("direct edits must not clear completedAt")
	}
}

func TestBoardDelete(t *testing.T) {
	b, _ := newTestBoard(t, fixture())
	b2 := b.Delete("3")
	if _, ok := b2.Task("3"); ok {
		t.Fatal("task should be deleted")
	}
	if _, ok := b.Task("3"); !ok {
		t.Fatal("original board must not change")
	}
	if len(b2.Delete("missing").Tasks) != len(b2.Tasks) {
		t.Fatal("deleting unknown id should be a no-op")
	}
}

func TestBoardAddCategory(t *testing.T) {
	b, _ := newTestBoard(t, nil)
	b2, c, err := b.AddCategory(NewCategory{Name: "Errands", Color: "#fff", Icon: "car"})
	if err != nil {
		t.Fatal(err)
	}
	if len(b2.Categories) != len(b.Categories)+1 || b2.Categories[len(b2.Categories)-1].ID != c.ID {
		t.Fatal("category should be appended")
	}
	if _, _, err := b.AddCategory(NewCategory{Name: " "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestBoardCategoryOrDefault(t *testing.T) {
	b, _ := newTestBoard(t, nil)
	if c := b.CategoryOrDefault("health"); c.ID != "health" {
		t.Fatalf("got %q", c.ID)
	}
	if c := b.CategoryOrDefault("gone"); c.ID != "work" {
		t.Fatalf("dangling reference should fall back to first category, got %q", c.ID)
	}
	empty := NewBoard(nil, nil)
	if c := empty.CategoryOrDefault("gone"); c.Name != Uncategorized.Name {
		t.Fatalf("expected Uncategorized, got %+v", c)
	}
}

func TestBoardStatsUsesClock(t *testing.T) {
	b, _ := newTestBoard(t, []Task{{ID: "a", DueDate: due("2025-01-15")}})
	if s := b.Stats(); s.DueToday != 1 {
		t.Fatalf("DueToday = %d, want 1", s.DueToday)
	}
}

func TestSampleTasksValid(t *testing.T) {
	for _, task := range SampleTasks() {
		if task.ID == "" || task.Title == "" || !task.Priority.Valid() {
			t.Fatalf("invalid seed task %+v", task)
		}
		if task.Completed != (task.CompletedAt != nil) {
			t.Fatalf("seed task %s has inconsistent completion", task.ID)
		}
	}
}
