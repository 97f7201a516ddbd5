package taskstore

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"todo/internal/service"
)

func TestSubscribe_ReceivesEveryMutation(t *testing.T) {
	s := New()

	var got []ChangeKind
	s.Subscribe(func(c Change) {
		got = append(got, c.Kind)
	})

	task, _ := s.Add("title", "description")
	s.ToggleComplete(task.ID)
	s.Edit(service.Task{ID: task.ID, Title: "t", Description: "d"})
	s.Delete(task.ID)

	want := []ChangeKind{Added, Toggled, Edited, Deleted}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSubscribe_FailedMutationsAreSilent(t *testing.T) {
	s := New()

	calls := 0
	s.Subscribe(func(Change) { calls++ })

	s.Add("", "description")
	s.ToggleComplete("missing")
	s.Edit(service.Task{ID: "missing", Title: "t", Description: "d"})
	s.Delete("missing")

	if calls != 0 {
		t.Errorf("expected no notifications, got %d", calls)
	}
}

func TestSubscribe_SubscriberCanReadStore(t *testing.T) {
	s := New()

	var seen int
	s.Subscribe(func(Change) {
		seen = len(s.List())
	})

	s.Add("a", "1")
	s.Add("b", "2")

	if seen != 2 {
		t.Errorf("expected subscriber to observe 2 tasks, got %d", seen)
	}
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := New()

	var first, second int
	unsubscribe := s.Subscribe(func(Change) { first++ })
	s.Subscribe(func(Change) { second++ })

	s.Add("a", "1")
	unsubscribe()
	s.Add("b", "2")

	if first != 1 {
		t.Errorf("expected first subscriber to see 1 change, got %d", first)
	}
	if second != 2 {
		t.Errorf("expected second subscriber to see 2 changes, got %d", second)
	}
}

func TestSubscribe_DeletedCarriesRemovedTask(t *testing.T) {
	s := New()
	task, _ := s.Add("title", "description")

	var got Change
	s.Subscribe(func(c Change) { got = c })
	s.Delete(task.ID)

	if got.Kind != Deleted || got.Task != task {
		t.Errorf("expected deleted change for %+v, got %+v", task, got)
	}
}

func TestLogChanges(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := New(WithIDFunc(func() string { return "fixed" }))
	s.Subscribe(LogChanges(log))
	s.Add("Buy milk", "2%")

	out := buf.String()
	for _, want := range []string{"store change", "kind=added", "id=fixed", `title="Buy milk"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got %q", want, out)
		}
	}
}

func TestSubscribe_ConcurrentChangesArriveInCommitOrder(t *testing.T) {
	s := New()

	var mu sync.Mutex
	var added []string
	s.Subscribe(func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		added = append(added, c.Task.ID)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("title", "description")
		}()
	}
	wg.Wait()

	tasks := s.List()
	if len(added) != len(tasks) {
		t.Fatalf("expected %d notifications, got %d", len(tasks), len(added))
	}
	for i, task := range tasks {
		if added[i] != task.ID {
			t.Fatalf("notification %d: expected %s, got %s", i, task.ID, added[i])
		}
	}
}
