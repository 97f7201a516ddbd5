// Package testutil provides testing utilities.
package testutil

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are deterministic (task-1, task-2, ...) and every operation can be
// made to fail.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	seq   int

	// Error injection for testing
	AddErr    error
	ToggleErr error
	EditErr   error
	DeleteErr error
	GetErr    error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task with an explicit ID, bypassing validation.
func (f *FakeService) AddTask(id, title, description string, complete bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		IsComplete:  complete,
	})
}

// Add implements service.Service.
func (f *FakeService) Add(title, description string) (service.Task, error) {
	if f.AddErr != nil {
		return service.Task{}, f.AddErr
	}
	if strings.TrimSpace(title) == "" {
		return service.Task{}, service.ErrEmptyTitle
	}
	if strings.TrimSpace(description) == "" {
		return service.Task{}, service.ErrEmptyDescription
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	task := service.Task{
		ID:          fmt.Sprintf("task-%d", f.seq),
		Title:       title,
		Description: description,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// ToggleComplete implements service.Service.
func (f *FakeService) ToggleComplete(id string) error {
	if f.ToggleErr != nil {
		return f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	f.tasks[i].IsComplete = !f.tasks[i].IsComplete
	return nil
}

// Edit implements service.Service.
func (f *FakeService) Edit(updated service.Task) error {
	if f.EditErr != nil {
		return f.EditErr
	}
	if strings.TrimSpace(updated.Title) == "" {
		return service.ErrEmptyTitle
	}
	if strings.TrimSpace(updated.Description) == "" {
		return service.ErrEmptyDescription
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(updated.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", service.ErrNotFound, updated.ID)
	}
	f.tasks[i] = updated
	return nil
}

// Delete implements service.Service.
func (f *FakeService) Delete(id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

// Get implements service.Service.
func (f *FakeService) Get(id string) (service.Task, error) {
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	i := f.index(id)
	if i < 0 {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	return f.tasks[i], nil
}

// List implements service.Service.
func (f *FakeService) List() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks)
}

// Counts implements service.Service.
func (f *FakeService) Counts() (open, done int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.IsComplete {
			done++
		} else {
			open++
		}
	}
	return open, done
}

func (f *FakeService) index(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
