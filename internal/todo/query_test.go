package todo

import (
	"testing"
	"time"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func due(s string) *Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(t *testing.T, got []Task, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func fixture() []Task {
	return []Task{
		{ID: "1", Title: "Write report", Description: "quarterly numbers", Priority: PriorityHigh, Category: "work", DueDate: due("2025-01-20"), CreatedAt: at("2025-01-03T10:00:00Z")},
		{ID: "2", Title: "buy milk", Priority: PriorityLow, Category: "shopping", CreatedAt: at("2025-01-05T10:00:00Z")},
		{ID: "3", Title: "Gym", Description: "leg day", Completed: true, Priority: PriorityMedium, Category: "health", DueDate: due("2025-01-10"), CreatedAt: at("2025-01-01T10:00:00Z")},
		{ID: "4", Title: "Call bank", Priority: PriorityHigh, Category: "personal", DueDate: due("2025-01-15"), CreatedAt: at("2025-01-04T10:00:00Z")},
		{ID: "5", Title: "Report expenses", Priority: PriorityMedium, Category: "work", CreatedAt: at("2025-01-02T10:00:00Z")},
	}
}

// ============================================================
// Filtering
// ============================================================

func TestApplyStatusActiveExample(t *testing.T) {
	tasks := []Task{
		{ID: "1", Title: "A", Priority: PriorityLow, CreatedAt: at("2025-01-01T00:00:00Z")},
		{ID: "2", Title: "B", Completed: true, Priority: PriorityHigh, CreatedAt: at("2025-01-02T00:00:00Z")},
	}
	got := Apply(tasks, Query{Status: StatusActive})
	equalIDs(t, got, "1")
}

func TestApplyStatusCompleted(t *testing.T) {
	got := Apply(fixture(), Query{Status: StatusCompleted, SortBy: SortCreated})
	equalIDs(t, got, "3")
}

func TestApplyEmptySearchKeepsEverything(t *testing.T) {
	got := Apply(fixture(), DefaultQuery())
	if len(got) != len(fixture()) {
		t.Fatalf("expected %d tasks, got %d", len(fixture()), len(got))
	}
}

func TestApplySearchTitleAndDescription(t *testing.T) {
	tests := []struct {
		search string
		want   []string
	}{
		{"report", []string{"1", "5"}},
		{"REPORT", []string{"1", "5"}},
		{"quarterly", []string{"1"}},
		{"LEG", []string{"3"}},
		{"milk", []string{"2"}},
		{"nothing matches", nil},
	}
	for _, tt := range tests {
		got := Apply(fixture(), Query{Search: tt.search, SortBy: SortAlphabetical})
		if len(got) != len(tt.want) {
			t.Errorf("search %q: got %v, want %v", tt.search, ids(got), tt.want)
			continue
		}
		seen := map[string]bool{}
		for _, task := range got {
			seen[task.ID] = true
		}
		for _, id := range tt.want {
			if !seen[id] {
				t.Errorf("search %q: missing %s in %v", tt.search, id, ids(got))
			}
		}
	}
}

func TestApplyCategoryAndPriority(t *testing.T) {
	got := Apply(fixture(), Query{Category: "work", Priority: PriorityHigh})
	equalIDs(t, got, "1")

	got = Apply(fixture(), Query{Category: "does-not-exist"})
	if len(got) != 0 {
		t.Fatalf("unknown category should match nothing, got %v", ids(got))
	}
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, DefaultQuery())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := ids(in)
	Apply(in, Query{SortBy: SortAlphabetical})
	after := ids(in)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input reordered: %v -> %v", before, after)
		}
	}
}

func TestApplyUnknownStatusMeansAll(t *testing.T) {
	got := Apply(fixture(), Query{Status: "bogus"})
	if len(got) != len(fixture()) {
		t.Fatalf("expected all tasks, got %d", len(got))
	}
}

// ============================================================
// Sorting
// ============================================================

func TestApplySortCreatedNewestFirst(t *testing.T) {
	got := Apply(fixture(), Query{SortBy: SortCreated})
	equalIDs(t, got, "2", "4", "1", "5", "3")
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("createdAt increases at %d", i)
		}
	}
}

func TestApplyUnknownSortFallsBackToCreated(t *testing.T) {
	got := Apply(fixture(), Query{SortBy: "bogus"})
	equalIDs(t, got, "2", "4", "1", "5", "3")
}

func TestApplySortDueDateUndatedLast(t *testing.T) {
	got := Apply(fixture(), Query{SortBy: SortDueDate})
	// Undated tasks keep their input order (2 before 5).
	equalIDs(t, got, "3", "4", "1", "2", "5")
}

func TestApplySortPriorityStable(t *testing.T) {
	got := Apply(fixture(), Query{SortBy: SortPriority})
	equalIDs(t, got, "1", "4", "3", "5", "2")
	for i := 1; i < len(got); i++ {
		if got[i].Priority.Rank() > got[i-1].Priority.Rank() {
			t.Fatalf("priority rank increases at %d", i)
		}
	}
}

func TestApplySortAlphabeticalLocaleAware(t *testing.T) {
	tasks := []Task{
		{ID: "b", Title: "Banana"},
		{ID: "a", Title: "apple"},
	}
	got := Apply(tasks, Query{SortBy: SortAlphabetical})
	equalIDs(t, got, "a", "b")
}

func TestApplyIdempotent(t *testing.T) {
	queries := []Query{
		{SortBy: SortCreated},
		{SortBy: SortDueDate, Status: StatusActive},
		{SortBy: SortPriority, Search: "r"},
		{SortBy: SortAlphabetical, Category: "work"},
	}
	for _, q := range queries {
		once := Apply(fixture(), q)
		twice := Apply(append([]Task(nil), once...), q)
		a, b := ids(once), ids(twice)
		if len(a) != len(b) {
			t.Fatalf("query %+v: lengths differ", q)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("query %+v: %v != %v", q, a, b)
			}
		}
	}
}

func TestApplyResultIsSubset(t *testing.T) {
	in := fixture()
	known := map[string]bool{}
	for _, task := range in {
		known[task.ID] = true
	}
	for _, q := range []Query{{Search: "a"}, {Status: StatusCompleted}, {Priority: PriorityMedium, SortBy: SortDueDate}} {
		for _, task := range Apply(in, q) {
			if !known[task.ID] {
				t.Fatalf("unexpected id %s", task.ID)
			}
		}
	}
}

// ============================================================
// Parsing
// ============================================================

func TestParseEnums(t *testing.T) {
	if _, err := ParseStatus("active"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := ParseSortKey("dueDate"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSortKey("due"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
	if _, err := ParsePriority("high"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}
