package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"todo/internal/service"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, service.Task{ID: "x", Title: "Buy milk", Description: "2%"})
	FormatTask(&buf, 12, service.Task{ID: "y", Title: "Walk dog", Description: "park", IsComplete: true})

	expected := "   1  [ ] Buy milk\n          2%\n  12  [x] Walk dog\n          park\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskWithID(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskWithID(&buf, 3, service.Task{ID: "abc123", Title: "Call mom", Description: "Sunday"})

	expected := "   3  [ ] Call mom  (abc123)\n          Sunday\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_NormalizesText(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, service.Task{Title: "line one\nline two", Description: "  "})

	expected := "   1  [ ] line one line two\n          (no description)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	if got := normalizeTitle("\r\n"); got != "(untitled)" {
		t.Errorf("expected (untitled), got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExport_Empty(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "[]\n"},
		{FormatYAML, "[]\n"},
		{FormatText, "Nothing to show yet.\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Export(&buf, nil, tt.format); err != nil {
			t.Fatalf("Export(%s): %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Errorf("Export(%s): expected %q, got %q", tt.format, tt.want, buf.String())
		}
	}
}

func TestExport_JSON(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Title: "Buy milk", Description: "whole", IsComplete: true},
	}

	var buf bytes.Buffer
	if err := Export(&buf, tasks, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	if got[0]["id"] != "a" || got[0]["title"] != "Buy milk" || got[0]["is_complete"] != true {
		t.Errorf("unexpected json record: %v", got[0])
	}
}

func TestExport_YAML(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Title: "Buy milk", Description: "whole", IsComplete: true},
		{ID: "b", Title: "Walk dog", Description: "park"},
	}

	var buf bytes.Buffer
	if err := Export(&buf, tasks, FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"- id: a", "title: Buy milk", "is_complete: true", "- id: b", "is_complete: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected yaml to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "id: a") > strings.Index(out, "id: b") {
		t.Errorf("expected insertion order, got:\n%s", out)
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, Format("csv")); err == nil {
		t.Error("expected error for unknown format")
	}
}
