package taskstore

import (
	"log/slog"

	"todo/internal/service"
)

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Toggled ChangeKind = "toggled"
	Edited  ChangeKind = "edited"
	Deleted ChangeKind = "deleted"
)

// Change describes a successful mutation. Task holds the record as it is
// after the mutation, or as it was before removal for Deleted.
type Change struct {
	Kind ChangeKind
	Task service.Task
}

// Subscriber receives store changes.
type Subscriber func(Change)

type subscription struct {
	id int
	fn Subscriber
}

// Subscribe registers fn to be called after every successful mutation.
// Subscribers run synchronously on the mutating goroutine, in registration
// order, after the store lock is released, so they may read the store.
// Changes are delivered in the order they were committed, even under
// concurrent callers. Subscribers must not mutate the store.
// Returns an unsubscribe function.
func (s *TaskStore) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *TaskStore) publish(c Change) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(c)
	}
}

// LogChanges returns a Subscriber that records every change on log.
func LogChanges(log *slog.Logger) Subscriber {
	return func(c Change) {
		log.Debug("store change",
			"kind", string(c.Kind),
			"id", c.Task.ID,
			"title", c.Task.Title,
			"complete", c.Task.IsComplete,
		)
	}
}
