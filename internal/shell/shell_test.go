package shell_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/shell"
	"todo/internal/taskstore"
)

// runScript feeds script to a fresh session over a new store.
func runScript(t *testing.T, script string, opts ...shell.Option) (stdout, stderr string, code int, store *taskstore.TaskStore) {
	t.Helper()

	n := 0
	store = taskstore.New(taskstore.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}))
	cfg := &config.Config{Dir: t.TempDir(), Title: config.DefaultTitle}
	d := cli.NewDispatcher(commands.DefaultRegistry, store, cfg)

	var outBuf, errBuf bytes.Buffer
	opts = append([]shell.Option{shell.WithInteractive(false)}, opts...)
	s := shell.New(d, strings.NewReader(script), &outBuf, &errBuf, opts...)
	code = s.Run(context.Background())
	return outBuf.String(), errBuf.String(), code, store
}

func TestSession_BuyMilk(t *testing.T) {
	script := `add "Buy milk" whole milk
add 'Walk dog' around the park
toggle 1
list
`
	stdout, stderr, code, store := runScript(t, script)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	expected := "ok\nok\nok\n" +
		"   1  [x] Buy milk\n          whole milk\n" +
		"   2  [ ] Walk dog\n          around the park\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if len(store.List()) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(store.List()))
	}
}

func TestSession_CommentsAndBlankLines(t *testing.T) {
	stdout, stderr, code, _ := runScript(t, "\n# nothing yet\n   \nlist\n")

	if code != exitcode.Success || stderr != "" {
		t.Fatalf("unexpected failure: code=%d stderr=%q", code, stderr)
	}
	if stdout != "Nothing to show yet.\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestSession_LastExitCodeWins(t *testing.T) {
	_, stderr, code, _ := runScript(t, "rm 1\n")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 1\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}

	_, _, code, _ = runScript(t, "rm 1\nversion\n")
	if code != exitcode.Success {
		t.Errorf("expected a later success to reset the code, got %d", code)
	}
}

func TestSession_QuitStopsReading(t *testing.T) {
	stdout, _, code, store := runScript(t, "add a b\nquit\nadd c d\n")

	if code != exitcode.Success {
		t.Errorf("expected success, got %d", code)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if len(store.List()) != 1 {
		t.Errorf("expected lines after quit to be ignored, got %d tasks", len(store.List()))
	}
}

func TestSession_ExitKeepsLastCode(t *testing.T) {
	_, _, code, _ := runScript(t, "toggle 7\nEXIT\n")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
}

func TestSession_UnbalancedQuote(t *testing.T) {
	_, stderr, code, store := runScript(t, "add \"Buy milk\n")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: ") {
		t.Errorf("expected error line, got %q", stderr)
	}
	if len(store.List()) != 0 {
		t.Errorf("expected no task, got %d", len(store.List()))
	}
}

func TestSession_DeletedIDNotReused(t *testing.T) {
	script := "add one first\nrm id-0001\nadd two second\nlist --ids\n"
	stdout, stderr, code, _ := runScript(t, script)

	if code != exitcode.Success {
		t.Fatalf("unexpected failure: code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(stdout, "(id-0002)") || strings.Contains(stdout, "(id-0001)") {
		t.Errorf("unexpected listing %q", stdout)
	}
}

func TestSession_InteractivePrompt(t *testing.T) {
	stdout, _, _, _ := runScript(t, "version\n", shell.WithInteractive(true))

	expected := "> todo 0.1.0\n> \n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestSession_CancelledContext(t *testing.T) {
	store := taskstore.New()
	d := cli.NewDispatcher(commands.DefaultRegistry, store, &config.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := shell.New(d, strings.NewReader("add a b\n"), &out, &out, shell.WithInteractive(false))
	if code := s.Run(ctx); code != exitcode.Success {
		t.Errorf("expected success, got %d", code)
	}
	if len(store.List()) != 0 {
		t.Error("expected no commands to run after cancellation")
	}
}

func TestSession_DollarTextIsLiteral(t *testing.T) {
	t.Setenv("TODO_TEST_SECRET", "hunter2")
	script := "add Lunch costs $12 today\nadd Rent $TODO_TEST_SECRET\nadd Coffee $5\n"

	_, stderr, code, store := runScript(t, script)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	tasks := store.List()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	want := []string{"costs $12 today", "$TODO_TEST_SECRET", "$5"}
	for i, desc := range want {
		if tasks[i].Description != desc {
			t.Errorf("task %d: expected description %q, got %q", i+1, desc, tasks[i].Description)
		}
	}
}

// cancelOnRead cancels its context during the first Read, then delivers data.
type cancelOnRead struct {
	cancel context.CancelFunc
	data   *strings.Reader
}

func (r *cancelOnRead) Read(p []byte) (int, error) {
	r.cancel()
	return r.data.Read(p)
}

func TestSession_CancelDuringRead(t *testing.T) {
	store := taskstore.New()
	store.Add("Buy milk", "2%")
	d := cli.NewDispatcher(commands.DefaultRegistry, store, &config.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := &cancelOnRead{cancel: cancel, data: strings.NewReader("rm 1\n")}

	var out bytes.Buffer
	s := shell.New(d, in, &out, &out, shell.WithInteractive(false))
	if code := s.Run(ctx); code != exitcode.Success {
		t.Errorf("expected success, got %d", code)
	}
	if len(store.List()) != 1 {
		t.Error("expected the line read after cancellation to be discarded")
	}
	if out.String() != "" {
		t.Errorf("expected no output, got %q", out.String())
	}
}
