package export

import (
	"fmt"
	"strings"

	"github.com/sadopc/taskflow/internal/todo"
)

// Format names an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatCSV, FormatJSON, FormatYAML}

// Label is the display name, e.g. "CSV".
func (f Format) Label() string { return strings.ToUpper(string(f)) }

// FileName returns the default export file name for the given date stamp.
func FileName(f Format, date string) string {
	return fmt.Sprintf("taskflow-export-%s.%s", date, f)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json or yaml)", s)
}

// Write dispatches to the writer for f.
func Write(f Format, tasks []todo.Task, categories map[string]todo.Category, path string) error {
	switch f {
	case FormatCSV:
		return ToCSV(tasks, categories, path)
	case FormatJSON:
		return ToJSON(tasks, categories, path)
	case FormatYAML:
		return ToYAML(tasks, categories, path)
	}
	return fmt.Errorf("unknown export format %q", f)
}
