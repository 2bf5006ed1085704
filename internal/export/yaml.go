package export

import (
	"fmt"
	"os"

	"github.com/sadopc/taskflow/internal/todo"
	"gopkg.in/yaml.v3"
)

func ToYAML(tasks []todo.Task, categories map[string]todo.Category, path string) error {
	data, err := yaml.Marshal(buildDocument(tasks, categories))
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write yaml file: %w", err)
	}
	return nil
}
