package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/taskflow/internal/todo"
)

var csvHeader = []string{"ID", "Title", "Category", "Priority", "Status", "Due", "Created", "Completed", "Description"}

func ToCSV(tasks []todo.Task, categories map[string]todo.Category, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			t.ID,
			t.Title,
			categoryName(categories, t.Category),
			string(t.Priority),
			status(t),
			dueString(t),
			t.CreatedAt.Local().Format(time.RFC3339),
			completedString(t),
			t.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
