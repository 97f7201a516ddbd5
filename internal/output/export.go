package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"todo/internal/service"
)

// Format is an export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an export format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// Export writes tasks to w in the given format.
// An empty list encodes as "[]" for json and yaml.
func Export(w io.Writer, tasks []service.Task, format Format) error {
	if tasks == nil {
		tasks = []service.Task{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()

	case FormatText:
		if len(tasks) == 0 {
			FormatEmpty(w)
			return nil
		}
		for i, task := range tasks {
			FormatTaskWithID(w, i+1, task)
		}
		return nil

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
