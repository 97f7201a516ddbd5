// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

const (
	// EmptyMessage is printed when there are no tasks.
	EmptyMessage = "Nothing to show yet."

	// descIndent aligns descriptions under titles: 4-wide number, 2 spaces, 4-wide checkbox.
	descIndent = "          "
)

// FormatTask formats a task for the list command.
// Format: "{N:>4}  [ ] {TITLE}\n" followed by the indented description.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task), normalizeTitle(task.Title))
	fmt.Fprintf(w, "%s%s\n", descIndent, normalizeDescription(task.Description))
}

// FormatTaskWithID is FormatTask with the task ID appended to the title line.
func FormatTaskWithID(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, Checkbox(task), normalizeTitle(task.Title), task.ID)
	fmt.Fprintf(w, "%s%s\n", descIndent, normalizeDescription(task.Description))
}

// FormatEmpty prints the empty-list message.
func FormatEmpty(w io.Writer) {
	fmt.Fprintln(w, EmptyMessage)
}

// Checkbox renders the completion state as "[x]" or "[ ]".
func Checkbox(task service.Task) string {
	if task.IsComplete {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = flatten(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeDescription is normalizeTitle for descriptions.
func normalizeDescription(desc string) string {
	desc = flatten(desc)
	if strings.TrimSpace(desc) == "" {
		return "(no description)"
	}
	return desc
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
