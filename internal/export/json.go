package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/taskflow/internal/todo"
)

type document struct {
	ExportedAt string       `json:"exported_at" yaml:"exported_at"`
	Count      int          `json:"count" yaml:"count"`
	Tasks      []taskRecord `json:"tasks" yaml:"tasks"`
}

type taskRecord struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category" yaml:"category"`
	CategoryID  string `json:"category_id" yaml:"category_id"`
	Priority    string `json:"priority" yaml:"priority"`
	Status      string `json:"status" yaml:"status"`
	DueDate     string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	CompletedAt string `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// CategoryIndex maps category ids to categories for export lookups.
func CategoryIndex(cats []todo.Category) map[string]todo.Category {
	idx := make(map[string]todo.Category, len(cats))
	for _, c := range cats {
		idx[c.ID] = c
	}
	return idx
}

func buildDocument(tasks []todo.Task, categories map[string]todo.Category) document {
	doc := document{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, taskRecord{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Category:    categoryName(categories, t.Category),
			CategoryID:  t.Category,
			Priority:    string(t.Priority),
			Status:      status(t),
			DueDate:     dueString(t),
			CreatedAt:   t.CreatedAt.Local().Format(time.RFC3339),
			CompletedAt: completedString(t),
		})
	}
	return doc
}

func ToJSON(tasks []todo.Task, categories map[string]todo.Category, path string) error {
	data, err := json.MarshalIndent(buildDocument(tasks, categories), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func categoryName(categories map[string]todo.Category, id string) string {
	if c, ok := categories[id]; ok {
		return c.Name
	}
	return "Unknown"
}

func status(t todo.Task) string {
	if t.Completed {
		return "completed"
	}
	return "active"
}

func dueString(t todo.Task) string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.String()
}

func completedString(t todo.Task) string {
	if t.CompletedAt == nil {
		return ""
	}
	return t.CompletedAt.Local().Format(time.RFC3339)
}
