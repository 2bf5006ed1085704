// Package persist loads and saves the task and category lists as two JSON
// records in a key-value backend.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/sadopc/taskflow/internal/todo"
)

const (
	TasksKey      = "bolt-todo-tasks"
	CategoriesKey = "bolt-todo-categories"
)

// ErrMalformedState marks persisted content that could not be decoded or
// failed structural checks.
var ErrMalformedState = errors.New("malformed persisted state")

type Adapter struct {
	kv     KV
	logger *log.Logger

	// mu serialises writes so the two records of one snapshot are never
	// interleaved with another's. saved is the newest generation written.
	mu    sync.Mutex
	saved uint64
}

// NewAdapter wraps kv. A nil logger discards diagnostics.
func NewAdapter(kv KV, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Adapter{kv: kv, logger: logger}
}

// Load reads both records. It never fails: a missing tasks record yields the
// sample tasks, a missing categories record the default categories, and
// malformed content of either is replaced the same way and logged.
func (a *Adapter) Load() ([]todo.Task, []todo.Category) {
	tasks, err := a.loadTasks()
	if err != nil {
		a.logger.Printf("persist: %v; using sample tasks", err)
		tasks = todo.SampleTasks()
	}
	cats, err := a.loadCategories()
	if err != nil {
		a.logger.Printf("persist: %v; using default categories", err)
		cats = todo.DefaultCategories()
	}
	return tasks, cats
}

func (a *Adapter) loadTasks() ([]todo.Task, error) {
	raw, ok, err := a.kv.Get(TasksKey)
	if err != nil {
		a.logger.Printf("persist: read %s: %v", TasksKey, err)
		return todo.SampleTasks(), nil
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return todo.SampleTasks(), nil
	}
	// A stored "[]" is a list the user emptied and loads as such.
	tasks, err := DecodeTasks([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TasksKey, err)
	}
	return tasks, nil
}

func (a *Adapter) loadCategories() ([]todo.Category, error) {
	raw, ok, err := a.kv.Get(CategoriesKey)
	if err != nil {
		a.logger.Printf("persist: read %s: %v", CategoriesKey, err)
		return todo.DefaultCategories(), nil
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return todo.DefaultCategories(), nil
	}
	cats, err := DecodeCategories([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CategoriesKey, err)
	}
	return cats, nil
}

// Save writes both records. Callers treat it as fire-and-forget and only log
// the error.
func (a *Adapter) Save(tasks []todo.Task, cats []todo.Category) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.save(tasks, cats)
}

// SaveGeneration writes the snapshot numbered gen unless a newer generation
// has already been written, in which case it reports false and writes
// nothing. Snapshots saved concurrently therefore land in generation order.
func (a *Adapter) SaveGeneration(gen uint64, tasks []todo.Task, cats []todo.Category) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen <= a.saved {
		return false, nil
	}
	// A failed write still retires older generations; the next change
	// writes a newer snapshot.
	a.saved = gen
	if err := a.save(tasks, cats); err != nil {
		return false, err
	}
	return true, nil
}

func (a *Adapter) save(tasks []todo.Task, cats []todo.Category) error {
	if err := a.saveTasks(tasks); err != nil {
		return err
	}
	return a.saveCategories(cats)
}

func (a *Adapter) saveTasks(tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	if err := a.kv.Set(TasksKey, string(data)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (a *Adapter) saveCategories(cats []todo.Category) error {
	if cats == nil {
		cats = []todo.Category{}
	}
	data, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	if err := a.kv.Set(CategoriesKey, string(data)); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

// DecodeTasks parses a JSON task array and checks each record has an id, a
// title and a known priority.
func DecodeTasks(data []byte) ([]todo.Task, error) {
	var tasks []todo.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if tasks == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformedState)
	}
	for i, t := range tasks {
		switch {
		case t.ID == "":
			return nil, fmt.Errorf("%w: task %d has no id", ErrMalformedState, i)
		case strings.TrimSpace(t.Title) == "":
			return nil, fmt.Errorf("%w: task %q has no title", ErrMalformedState, t.ID)
		case !t.Priority.Valid():
			return nil, fmt.Errorf("%w: task %q has priority %q", ErrMalformedState, t.ID, t.Priority)
		}
	}
	return tasks, nil
}

func DecodeCategories(data []byte) ([]todo.Category, error) {
	var cats []todo.Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if cats == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformedState)
	}
	for i, c := range cats {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: category %d has no id", ErrMalformedState, i)
		}
	}
	return cats, nil
}
