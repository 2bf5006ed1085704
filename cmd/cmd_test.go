package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/taskflow/internal/todo"
)

type runner func(args ...string) (string, error)

// setup points the CLI at a fresh SQLite file and export directory.
func setup(t *testing.T) (runner, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TASKFLOW_DB", filepath.Join(dir, "taskflow.db"))
	t.Setenv("TASKFLOW_EXPORT_DIR", dir)
	t.Setenv("TASKFLOW_REDIS_ADDR", "")
	t.Setenv("TASKFLOW_LOG", "")
	envFile := filepath.Join(dir, "missing.env")

	return func(args ...string) (string, error) {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(append([]string{"--env", envFile}, args...))
		err := root.Execute()
		return out.String(), err
	}, dir
}

func mustRun(t *testing.T, run runner, args ...string) string {
	t.Helper()
	out, err := run(args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

// addedID extracts the short id from "Added <id> <title>".
func addedID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	if len(fields) < 3 || fields[0] != "Added" {
		t.Fatalf("unexpected add output %q", out)
	}
	return fields[1]
}

// ============================================================
// list / stats
// ============================================================

func TestListFirstRunShowsSamples(t *testing.T) {
	run, _ := setup(t)
	out := mustRun(t, run, "list")
	if !strings.Contains(out, "Finish hackathon submission") {
		t.Fatalf("sample task missing:\n%s", out)
	}
	if !strings.Contains(out, "10 of 10 tasks") {
		t.Fatalf("count line missing:\n%s", out)
	}
}

func TestListFilters(t *testing.T) {
	run, _ := setup(t)

	out := mustRun(t, run, "list", "--category", "health")
	if !strings.Contains(out, "Morning yoga session") || strings.Contains(out, "Buy groceries") {
		t.Fatalf("category filter failed:\n%s", out)
	}

	out = mustRun(t, run, "list", "--status", "completed")
	if strings.Contains(out, "Finish hackathon submission") {
		t.Fatalf("status filter failed:\n%s", out)
	}

	out = mustRun(t, run, "ls", "-s", "GROCERIES")
	if !strings.Contains(out, "1 of 10 tasks") {
		t.Fatalf("search should be case-insensitive:\n%s", out)
	}

	out = mustRun(t, run, "list", "-s", "no such thing")
	if !strings.Contains(out, "No tasks found.") {
		t.Fatalf("expected empty result:\n%s", out)
	}
}

func TestListCategoryByName(t *testing.T) {
	run, _ := setup(t)
	out := mustRun(t, run, "list", "-c", "Shopping")
	if !strings.Contains(out, "Buy groceries for the week") {
		t.Fatalf("category name lookup failed:\n%s", out)
	}
}

func TestListRejectsBadFlags(t *testing.T) {
	run, _ := setup(t)
	for _, args := range [][]string{
		{"list", "--status", "bogus"},
		{"list", "--sort", "bogus"},
		{"list", "--priority", "urgent"},
		{"list", "--category", "nope"},
	} {
		if _, err := run(args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestStats(t *testing.T) {
	run, _ := setup(t)
	out := mustRun(t, run, "stats")
	if !strings.Contains(out, "Complete") || !strings.Contains(out, "total       10") {
		t.Fatalf("unexpected stats:\n%s", out)
	}
	if strings.Contains(out, "last saved") {
		t.Fatalf("nothing saved yet:\n%s", out)
	}

	mustRun(t, run, "add", "Something")
	out = mustRun(t, run, "stats")
	if !strings.Contains(out, "last saved") {
		t.Fatalf("stats should report the last save:\n%s", out)
	}
}

// ============================================================
// add / done / delete
// ============================================================

func TestAddPersists(t *testing.T) {
	run, _ := setup(t)

	out := mustRun(t, run, "add", "Water", "the", "plants", "-p", "high", "-c", "personal", "--due", "2030-05-01")
	addedID(t, out)

	out = mustRun(t, run, "list", "-s", "water the plants")
	if !strings.Contains(out, "1 of 11 tasks") || !strings.Contains(out, "2030-05-01") {
		t.Fatalf("added task not listed:\n%s", out)
	}
	if !strings.Contains(out, "Personal") || !strings.Contains(out, "high") {
		t.Fatalf("added task has wrong fields:\n%s", out)
	}
}

func TestAddUsesSavedDefaults(t *testing.T) {
	run, _ := setup(t)
	out := mustRun(t, run, "add", "Plain task")
	addedID(t, out)

	out = mustRun(t, run, "list", "-s", "plain task", "-c", "personal", "-p", "medium")
	if !strings.Contains(out, "1 of 11 tasks") {
		t.Fatalf("defaults from settings not applied:\n%s", out)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	run, _ := setup(t)
	for _, args := range [][]string{
		{"add"},
		{"add", "   "},
		{"add", "x", "-p", "urgent"},
		{"add", "x", "-c", "nope"},
		{"add", "x", "--due", "tomorrow"},
	} {
		if _, err := run(args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
	out := mustRun(t, run, "stats")
	if !strings.Contains(out, "total       10") {
		t.Fatalf("failed adds must not save:\n%s", out)
	}
}

func TestDoneAndUndo(t *testing.T) {
	run, _ := setup(t)
	id := addedID(t, mustRun(t, run, "add", "Ship it"))

	if out := mustRun(t, run, "done", id); !strings.Contains(out, "Completed Ship it") {
		t.Fatalf("done output %q", out)
	}
	if out := mustRun(t, run, "done", id); !strings.Contains(out, "already completed") {
		t.Fatalf("second done output %q", out)
	}
	if out := mustRun(t, run, "done", "--undo", id); !strings.Contains(out, "Reopened Ship it") {
		t.Fatalf("undo output %q", out)
	}
	if out := mustRun(t, run, "done", "--undo", id); !strings.Contains(out, "already open") {
		t.Fatalf("second undo output %q", out)
	}
}

func TestDoneUnknownAndAmbiguous(t *testing.T) {
	run, _ := setup(t)
	if _, err := run("done", "does-not-exist"); err == nil {
		t.Fatal("expected error for unknown id")
	}
	if _, err := run("done", "sample"); err == nil {
		t.Fatal("expected error for ambiguous prefix")
	}
	if out := mustRun(t, run, "done", "sample-1"); !strings.Contains(out, "Finish hackathon submission") {
		t.Fatalf("exact id should win over prefix matches: %q", out)
	}
}

func TestDelete(t *testing.T) {
	run, _ := setup(t)
	if out := mustRun(t, run, "rm", "sample-3"); !strings.Contains(out, "Deleted Morning yoga session") {
		t.Fatalf("delete output %q", out)
	}
	out := mustRun(t, run, "list")
	if strings.Contains(out, "Morning yoga session") || !strings.Contains(out, "9 of 9 tasks") {
		t.Fatalf("task not deleted:\n%s", out)
	}
}

func TestMemoryFlagDoesNotPersist(t *testing.T) {
	run, _ := setup(t)
	mustRun(t, run, "--memory", "add", "Ephemeral")
	out := mustRun(t, run, "list")
	if strings.Contains(out, "Ephemeral") {
		t.Fatal("--memory must not write to the database")
	}
}

// ============================================================
// categories / export
// ============================================================

func TestCategories(t *testing.T) {
	run, _ := setup(t)
	out := mustRun(t, run, "categories")
	for _, name := range []string{"Work", "Personal", "Shopping", "Health"} {
		if !strings.Contains(out, name) {
			t.Fatalf("missing %s:\n%s", name, out)
		}
	}

	out = mustRun(t, run, "categories", "add", "Errands", "--color", "#123456")
	if !strings.Contains(out, "Added category Errands") {
		t.Fatalf("add output %q", out)
	}
	if _, err := run("categories", "add", "errands"); err == nil {
		t.Fatal("duplicate category name should fail")
	}

	mustRun(t, run, "add", "Post office", "-c", "errands")
	out = mustRun(t, run, "list", "-c", "Errands")
	if !strings.Contains(out, "Post office") {
		t.Fatalf("task in new category missing:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	run, dir := setup(t)

	path := filepath.Join(dir, "out.yaml")
	out := mustRun(t, run, "export", "-f", "yaml", "-o", path)
	if !strings.Contains(out, "Exported 10 tasks") {
		t.Fatalf("export output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Finish hackathon submission") {
		t.Fatal("export file missing tasks")
	}

	out = mustRun(t, run, "export", "--format", "csv")
	if !strings.Contains(out, filepath.Join(dir, "taskflow-export-")) {
		t.Fatalf("default path should be in the export dir: %q", out)
	}

	if _, err := run("export", "-f", "pdf"); err == nil {
		t.Fatal("unknown format should fail")
	}
}

// ============================================================
// helpers
// ============================================================

func TestFindTask(t *testing.T) {
	b := todo.NewBoard([]todo.Task{{ID: "abc1"}, {ID: "abc2"}, {ID: "xyz"}}, nil)

	if got, err := findTask(b, "xy"); err != nil || got.ID != "xyz" {
		t.Fatalf("prefix lookup = %v, %v", got.ID, err)
	}
	if _, err := findTask(b, "abc"); err == nil {
		t.Fatal("ambiguous prefix should fail")
	}
	if _, err := findTask(b, " "); err == nil {
		t.Fatal("blank id should fail")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0f8fad5b-d9cb-469f-a165-70867728950e"); got != "0f8fad5b" {
		t.Fatalf("shortID(uuid) = %q", got)
	}
	if got := shortID("sample-10"); got != "sample-10" {
		t.Fatalf("non-uuid ids must stay intact, got %q", got)
	}
}
