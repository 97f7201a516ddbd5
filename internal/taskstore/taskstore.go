// Package taskstore implements service.Service as an ordered in-memory list.
package taskstore

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"todo/internal/service"
)

// maxIDAttempts bounds how often Add asks the ID generator for a fresh ID.
const maxIDAttempts = 8

var (
	// ErrNotFound is returned when no task has the requested ID.
	ErrNotFound = service.ErrNotFound

	// ErrEmptyTitle is returned when a title is empty or whitespace-only.
	ErrEmptyTitle = service.ErrEmptyTitle

	// ErrEmptyDescription is returned when a description is empty or whitespace-only.
	ErrEmptyDescription = service.ErrEmptyDescription

	// ErrIDCollision is returned when the ID generator only yields IDs the
	// store has already issued.
	ErrIDCollision = errors.New("could not generate a unique task id")
)

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithIDFunc overrides the ID generator. The default is a random UUID.
func WithIDFunc(fn func() string) Option {
	return func(s *TaskStore) {
		s.newID = fn
	}
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *TaskStore) {
		s.log = log
	}
}

// TaskStore owns an ordered collection of tasks.
type TaskStore struct {
	// writeMu serializes mutations together with their notification, so
	// subscribers observe changes in commit order.
	writeMu sync.Mutex

	mu     sync.RWMutex
	tasks  []service.Task
	issued map[string]struct{} // every ID ever handed out, including deleted ones

	subMu  sync.Mutex
	subs   []subscription
	nextID int

	newID func() string
	log   *slog.Logger
}

var _ service.Service = (*TaskStore)(nil)

// New creates an empty TaskStore.
func New(opts ...Option) *TaskStore {
	s := &TaskStore{
		issued: make(map[string]struct{}),
		newID:  uuid.NewString,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new, incomplete task and returns it.
func (s *TaskStore) Add(title, description string) (service.Task, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := validate(title, description); err != nil {
		return service.Task{}, err
	}

	s.mu.Lock()
	id, err := s.freshID()
	if err != nil {
		s.mu.Unlock()
		return service.Task{}, err
	}
	task := service.Task{
		ID:          id,
		Title:       title,
		Description: description,
	}
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.publish(Change{Kind: Added, Task: task})
	return task, nil
}

// freshID must be called with mu held.
func (s *TaskStore) freshID() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, used := s.issued[id]; used {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	s.log.Warn("id generator exhausted", "attempts", maxIDAttempts)
	return "", ErrIDCollision
}

// ToggleComplete flips the completion flag of the task with the given ID.
func (s *TaskStore) ToggleComplete(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return notFound(id)
	}
	s.tasks[i].IsComplete = !s.tasks[i].IsComplete
	task := s.tasks[i]
	s.mu.Unlock()

	s.publish(Change{Kind: Toggled, Task: task})
	return nil
}

// Edit replaces the record of the task whose ID matches updated.ID.
func (s *TaskStore) Edit(updated service.Task) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := validate(updated.Title, updated.Description); err != nil {
		return err
	}

	s.mu.Lock()
	i := s.index(updated.ID)
	if i < 0 {
		s.mu.Unlock()
		return notFound(updated.ID)
	}
	s.tasks[i] = updated
	s.mu.Unlock()

	s.publish(Change{Kind: Edited, Task: updated})
	return nil
}

// Delete removes the task with the given ID.
func (s *TaskStore) Delete(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return notFound(id)
	}
	task := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.mu.Unlock()

	s.publish(Change{Kind: Deleted, Task: task})
	return nil
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (service.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return service.Task{}, notFound(id)
	}
	return s.tasks[i], nil
}

// List returns a copy of the tasks in insertion order.
func (s *TaskStore) List() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Counts returns the number of open and completed tasks.
func (s *TaskStore) Counts() (open, done int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.IsComplete {
			done++
		} else {
			open++
		}
	}
	return open, done
}

// index must be called with mu held. Lists are short, a scan is enough.
func (s *TaskStore) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool {
		return t.ID == id
	})
}

func validate(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
